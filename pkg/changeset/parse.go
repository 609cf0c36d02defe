package changeset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
	"gopkg.in/yaml.v3"
)

// Syntax is the document syntax of a change-set file.
type Syntax string

const (
	SyntaxJSON Syntax = "json"
	SyntaxYAML Syntax = "yaml"
)

// SyntaxFor picks the syntax from a file name: yaml for .yaml and .yml,
// json otherwise.
func SyntaxFor(filename string) Syntax {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return SyntaxYAML
	default:
		return SyntaxJSON
	}
}

// pathRef is a deleted or unchanged entry: a bare string or a record with a
// file_path field.
type pathRef string

func (p *pathRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = pathRef(s)
		return nil
	}
	var rec struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("expected a path string or an object with file_path: %w", err)
	}
	*p = pathRef(rec.FilePath)
	return nil
}

func (p *pathRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*p = pathRef(node.Value)
		return nil
	}
	var rec struct {
		FilePath string `yaml:"file_path"`
	}
	if err := node.Decode(&rec); err != nil {
		return fmt.Errorf("expected a path string or a mapping with file_path: %w", err)
	}
	*p = pathRef(rec.FilePath)
	return nil
}

type moveRecord struct {
	OldPath string `json:"old_path" yaml:"old_path"`
	NewPath string `json:"new_path" yaml:"new_path"`
	Old     string `json:"old" yaml:"old"`
	New     string `json:"new" yaml:"new"`
}

func (m moveRecord) normalize() types.Move {
	out := types.Move{OldPath: m.OldPath, NewPath: m.NewPath}
	if out.OldPath == "" {
		out.OldPath = m.Old
	}
	if out.NewPath == "" {
		out.NewPath = m.New
	}
	return out
}

// document is the union of every accepted key. Pointers tell a present but
// empty section apart from an absent one.
type document struct {
	Files          *[]archive.JSONRecord `json:"files" yaml:"files"`
	Added          *[]archive.JSONRecord `json:"added" yaml:"added"`
	AddedFiles     *[]archive.JSONRecord `json:"added_files" yaml:"added_files"`
	Modified       *[]archive.JSONRecord `json:"modified" yaml:"modified"`
	ModifiedFiles  *[]archive.JSONRecord `json:"modified_files" yaml:"modified_files"`
	Deleted        *[]pathRef            `json:"deleted" yaml:"deleted"`
	DeletedFiles   *[]pathRef            `json:"deleted_files" yaml:"deleted_files"`
	Moved          *[]moveRecord         `json:"moved" yaml:"moved"`
	MovedFiles     *[]moveRecord         `json:"moved_files" yaml:"moved_files"`
	Unchanged      *[]pathRef            `json:"unchanged" yaml:"unchanged"`
	UnchangedFiles *[]pathRef            `json:"unchanged_files" yaml:"unchanged_files"`
}

// Parse decodes a change-set document. Content of added and modified
// records is unwrapped from its fence. An archive document ("files") is
// accepted too and treated as a list of additions.
func Parse(data []byte, syntax Syntax) (*types.ChangeSet, error) {
	logger := logging.GetLogger("changeset")

	data, err := archive.Decompress(data)
	if err != nil {
		return nil, err
	}

	var doc document
	switch syntax {
	case SyntaxYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrChangeSetParse, "invalid %s change set", syntax)
	}

	if doc.Files == nil && doc.Added == nil && doc.AddedFiles == nil &&
		doc.Modified == nil && doc.ModifiedFiles == nil &&
		doc.Deleted == nil && doc.DeletedFiles == nil &&
		doc.Moved == nil && doc.MovedFiles == nil &&
		doc.Unchanged == nil && doc.UnchangedFiles == nil {
		return nil, errors.New(errors.ErrChangeSetParse, "document has no change-set sections")
	}

	cs := &types.ChangeSet{}
	if cs.Added, err = entries("added", doc.Files, doc.Added, doc.AddedFiles); err != nil {
		return nil, err
	}
	if cs.Modified, err = entries("modified", doc.Modified, doc.ModifiedFiles); err != nil {
		return nil, err
	}
	if cs.Deleted, err = refs("deleted", doc.Deleted, doc.DeletedFiles); err != nil {
		return nil, err
	}
	if cs.Unchanged, err = refs("unchanged", doc.Unchanged, doc.UnchangedFiles); err != nil {
		return nil, err
	}
	for _, section := range []*[]moveRecord{doc.Moved, doc.MovedFiles} {
		if section == nil {
			continue
		}
		for i, rec := range *section {
			mv := rec.normalize()
			if mv.OldPath == "" || mv.NewPath == "" {
				return nil, errors.Newf(errors.ErrChangeSetParse, "moved entry %d needs both an old and a new path", i).
					WithDetail("index", i)
			}
			cs.Moved = append(cs.Moved, mv)
		}
	}

	logger.Debug().
		Int("added", len(cs.Added)).
		Int("modified", len(cs.Modified)).
		Int("deleted", len(cs.Deleted)).
		Int("moved", len(cs.Moved)).
		Int("unchanged", len(cs.Unchanged)).
		Msg("Parsed change set")
	return cs, nil
}

func entries(section string, sources ...*[]archive.JSONRecord) ([]types.Entry, error) {
	var out []types.Entry
	for _, src := range sources {
		if src == nil {
			continue
		}
		for i, rec := range *src {
			if rec.FilePath == "" {
				return nil, errors.Newf(errors.ErrChangeSetParse, "%s entry %d has no file_path", section, i).
					WithDetail("section", section).
					WithDetail("index", i)
			}
			out = append(out, types.Entry{
				Path:    rec.FilePath,
				Content: []byte(archive.Unwrap(rec.Content)),
				Notes:   rec.Notes,
			})
		}
	}
	return out, nil
}

func refs(section string, sources ...*[]pathRef) ([]string, error) {
	var out []string
	for _, src := range sources {
		if src == nil {
			continue
		}
		for i, ref := range *src {
			if ref == "" {
				return nil, errors.Newf(errors.ErrChangeSetParse, "%s entry %d has no path", section, i).
					WithDetail("section", section).
					WithDetail("index", i)
			}
			out = append(out, string(ref))
		}
	}
	return out, nil
}

// ParseFile reads and parses a change-set file, choosing the syntax from
// its extension.
func ParseFile(fsys types.FS, filename string) (*types.ChangeSet, error) {
	data, err := fsys.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read change set %s", filename).
			WithDetail("path", filename)
	}
	return Parse(data, SyntaxFor(strings.TrimSuffix(filename, ".zst")))
}
