// Test Type: Unit Test
// Description: Tests for change-set parsing across legacy and current schemas

package changeset_test

import (
	"testing"

	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/changeset"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/testutil"
	"github.com/arthur-debert/f2llm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CurrentSchema(t *testing.T) {
	doc := `{
		"added": [{"file_path": "new.py", "notes": "", "content": "` + "```py\\nprint(1)\\n```" + `"}],
		"modified": [{"file_path": "main.go", "content": "package main"}],
		"unchanged": ["README.md", {"file_path": "go.mod"}],
		"deleted": ["old.txt"]
	}`

	cs, err := changeset.Parse([]byte(doc), changeset.SyntaxJSON)
	require.NoError(t, err)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, "new.py", cs.Added[0].Path)
	assert.Equal(t, "print(1)", string(cs.Added[0].Content))
	require.Len(t, cs.Modified, 1)
	assert.Equal(t, "package main", string(cs.Modified[0].Content))
	assert.Equal(t, []string{"README.md", "go.mod"}, cs.Unchanged)
	assert.Equal(t, []string{"old.txt"}, cs.Deleted)
	assert.Empty(t, cs.Moved)
}

func TestParse_LegacySchema(t *testing.T) {
	doc := `{
		"added_files": [{"file_path": "a.txt", "content": "A"}],
		"modified_files": [{"file_path": "b.txt", "content": "B"}],
		"deleted_files": [{"file_path": "c.txt"}, "d.txt"],
		"moved_files": [
			{"old_path": "e.txt", "new_path": "sub/e.txt"},
			{"old": "f.txt", "new": "g.txt"}
		]
	}`

	cs, err := changeset.Parse([]byte(doc), changeset.SyntaxJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, types.Archive(cs.Added).Paths())
	assert.Equal(t, []string{"b.txt"}, types.Archive(cs.Modified).Paths())
	assert.Equal(t, []string{"c.txt", "d.txt"}, cs.Deleted)
	assert.Equal(t, []types.Move{
		{OldPath: "e.txt", NewPath: "sub/e.txt"},
		{OldPath: "f.txt", NewPath: "g.txt"},
	}, cs.Moved)
}

func TestParse_YAML(t *testing.T) {
	doc := `
added:
  - file_path: notes.md
    content: |-
      ` + "```md" + `
      # Notes
      ` + "```" + `
deleted_files:
  - stale.txt
  - file_path: older.txt
moved:
  - old: x.txt
    new: y/x.txt
`
	cs, err := changeset.Parse([]byte(doc), changeset.SyntaxYAML)
	require.NoError(t, err)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, "# Notes", string(cs.Added[0].Content))
	assert.Equal(t, []string{"stale.txt", "older.txt"}, cs.Deleted)
	assert.Equal(t, []types.Move{{OldPath: "x.txt", NewPath: "y/x.txt"}}, cs.Moved)
}

func TestParse_ArchiveDocumentIsAdditions(t *testing.T) {
	cs, err := changeset.Parse([]byte(`{"files": [{"file_path": "a.txt", "content": "A"}]}`), changeset.SyntaxJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, types.Archive(cs.Added).Paths())
}

func TestParse_Compressed(t *testing.T) {
	packed, err := archive.Compress([]byte(`{"deleted": ["a.txt"]}`))
	require.NoError(t, err)

	cs, err := changeset.Parse(packed, changeset.SyntaxJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, cs.Deleted)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]struct {
		doc    string
		syntax changeset.Syntax
	}{
		"invalid json":          {`{"added": [`, changeset.SyntaxJSON},
		"no sections":           {`{"something": 1}`, changeset.SyntaxJSON},
		"empty yaml":            {``, changeset.SyntaxYAML},
		"added without path":    {`{"added": [{"content": "x"}]}`, changeset.SyntaxJSON},
		"deleted wrong type":    {`{"deleted": [42]}`, changeset.SyntaxJSON},
		"deleted empty record":  {`{"deleted": [{}]}`, changeset.SyntaxJSON},
		"move missing new path": {`{"moved_files": [{"old_path": "a"}]}`, changeset.SyntaxJSON},
		"invalid yaml":          {"added: [\n", changeset.SyntaxYAML},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := changeset.Parse([]byte(tt.doc), tt.syntax)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrChangeSetParse), "got %v", err)
		})
	}
}

func TestSyntaxFor(t *testing.T) {
	assert.Equal(t, changeset.SyntaxYAML, changeset.SyntaxFor("cs.yaml"))
	assert.Equal(t, changeset.SyntaxYAML, changeset.SyntaxFor("CS.YML"))
	assert.Equal(t, changeset.SyntaxJSON, changeset.SyntaxFor("cs.json"))
	assert.Equal(t, changeset.SyntaxJSON, changeset.SyntaxFor("changes"))
}

func TestParseFile(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/in", map[string]string{
		"changes.yml": "deleted: [a.txt]\n",
	})

	cs, err := changeset.ParseFile(fs, "/in/changes.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, cs.Deleted)

	_, err = changeset.ParseFile(fs, "/in/missing.json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}
