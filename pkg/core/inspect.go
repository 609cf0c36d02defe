package core

import (
	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/config"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// InspectOptions contains options for listing an archive
type InspectOptions struct {
	ArchiveFile string
	Format      archive.Format
	Config      *config.Config
	FileSystem  types.FS
}

// EntryInfo summarizes one archive entry.
type EntryInfo struct {
	Path        string
	Bytes       int
	Notes       string
	Placeholder bool
}

// InspectResult lists an archive without extracting it.
type InspectResult struct {
	ArchiveFile string
	Format      archive.Format
	Compressed  bool
	Entries     []EntryInfo
}

// TotalBytes sums the entry sizes.
func (r *InspectResult) TotalBytes() int {
	total := 0
	for _, e := range r.Entries {
		total += e.Bytes
	}
	return total
}

// Inspect decodes ArchiveFile and describes its entries.
func Inspect(opts InspectOptions) (*InspectResult, error) {
	defer logging.TrackOperation(logging.GetLogger("core.inspect"), "inspect")()
	fsys := fsOrDefault(opts.FileSystem)
	cfg, err := configOrDefault(opts.Config)
	if err != nil {
		return nil, err
	}

	entries, format, compressed, err := loadArchive(fsys, opts.ArchiveFile, opts.Format, cfg.Archive.Marker)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{
		ArchiveFile: opts.ArchiveFile,
		Format:      format,
		Compressed:  compressed,
		Entries:     make([]EntryInfo, 0, len(entries)),
	}
	for _, e := range entries {
		result.Entries = append(result.Entries, EntryInfo{
			Path:        e.Path,
			Bytes:       len(e.Content),
			Notes:       e.Notes,
			Placeholder: IsPlaceholder(e.Content),
		})
	}
	return result, nil
}
