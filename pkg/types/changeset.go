package types

// Move relocates a file inside the target tree.
type Move struct {
	OldPath string
	NewPath string
}

// ChangeSet is the canonical form every accepted change-set schema is
// normalized to. A path listed in more than one of Added, Modified and
// Deleted resolves to whichever operation runs last.
type ChangeSet struct {
	Added     []Entry
	Modified  []Entry
	Deleted   []string
	Moved     []Move
	Unchanged []string
}

// IsEmpty reports whether applying the change set would touch nothing.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Deleted) == 0 && len(c.Moved) == 0
}
