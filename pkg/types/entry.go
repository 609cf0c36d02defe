package types

// Entry is one file inside an archive.
type Entry struct {
	// Path is slash-separated and relative to the archived root.
	Path string
	// Content holds the raw file bytes, or the read-error placeholder.
	Content []byte
	// Notes is free text carried by the structured format; the text formats drop it.
	Notes string
}

// Archive is an ordered sequence of entries. Paths are expected to be unique;
// when they are not, the last entry written to disk wins.
type Archive []Entry

// Paths returns the entry paths in archive order.
func (a Archive) Paths() []string {
	out := make([]string, len(a))
	for i, e := range a {
		out[i] = e.Path
	}
	return out
}
