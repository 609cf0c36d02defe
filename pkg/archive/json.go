package archive

import (
	"encoding/json"
	"io"

	f2errors "github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// JSONRecord is one element of the "files" array. Change-set documents use
// the same record shape.
type JSONRecord struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	Notes    string `json:"notes" yaml:"notes"`
	Content  string `json:"content" yaml:"content"`
}

type jsonDocument struct {
	Files []JSONRecord `json:"files"`
}

// changeSetKeys are the change-set fields whose records carry file content.
var changeSetKeys = []string{"added", "modified", "added_files", "modified_files"}

// JSONCodec implements the structured format.
type JSONCodec struct{}

// NewJSONCodec returns the structured codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Format() Format { return FormatJSON }

// Encode writes {"files":[...]} with every content fenced.
func (c *JSONCodec) Encode(w io.Writer, entries []types.Entry) error {
	doc := jsonDocument{Files: make([]JSONRecord, 0, len(entries))}
	for _, e := range entries {
		doc.Files = append(doc.Files, JSONRecord{
			FilePath: e.Path,
			Notes:    e.Notes,
			Content:  Wrap(e.Path, e.Content),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return f2errors.Wrap(err, f2errors.ErrArchiveWrite, "failed to write json archive")
	}
	return nil
}

// Decode accepts either an archive document with a "files" array or a
// change-set document, from which added and modified records are taken.
// The whole document is validated before any entry is returned.
func (c *JSONCodec) Decode(r io.Reader) ([]types.Entry, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, f2errors.Wrap(err, f2errors.ErrArchiveParse, "invalid json archive")
	}

	var records []JSONRecord
	if files, ok := raw["files"]; ok {
		if err := json.Unmarshal(files, &records); err != nil {
			return nil, f2errors.Wrap(err, f2errors.ErrArchiveParse, "invalid \"files\" array").
				WithDetail("key", "files")
		}
	} else {
		found := false
		for _, key := range changeSetKeys {
			section, ok := raw[key]
			if !ok {
				continue
			}
			found = true
			var recs []JSONRecord
			if err := json.Unmarshal(section, &recs); err != nil {
				return nil, f2errors.Wrapf(err, f2errors.ErrArchiveParse, "invalid %q array", key).
					WithDetail("key", key)
			}
			records = append(records, recs...)
		}
		if !found {
			return nil, f2errors.New(f2errors.ErrArchiveParse, "json archive has no \"files\" array")
		}
	}

	entries := make([]types.Entry, 0, len(records))
	for i, rec := range records {
		if rec.FilePath == "" {
			return nil, f2errors.Newf(f2errors.ErrArchiveParse, "record %d has no file_path", i).
				WithDetail("index", i)
		}
		entries = append(entries, types.Entry{
			Path:    rec.FilePath,
			Content: []byte(Unwrap(rec.Content)),
			Notes:   rec.Notes,
		})
	}
	return entries, nil
}
