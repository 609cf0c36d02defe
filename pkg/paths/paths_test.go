// Test Type: Unit Test
// Description: Tests for the paths package - containment of entry paths

package paths_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/filesystem"
	"github.com/arthur-debert/f2llm/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Accepts(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"a.txt", "a.txt"},
		{"sub/dir/b.go", "sub/dir/b.go"},
		{"sub\\win.txt", "sub/win.txt"},
		{"./x/../y.txt", "y.txt"},
		{"..hidden", "..hidden"},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got, err := paths.Resolve("/target", tt.rel)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join("/target", filepath.FromSlash(tt.want)), got)
		})
	}
}

func TestResolve_Rejects(t *testing.T) {
	for name, rel := range map[string]string{
		"empty":          "",
		"absolute":       "/etc/passwd",
		"parent":         "../outside.txt",
		"nested parent":  "a/../../outside.txt",
		"backslash up":   "..\\outside.txt",
		"null byte":      "a\x00b",
		"root itself":    ".",
		"root via trail": "a/..",
		"too long":       strings.Repeat("a", paths.MaxPathLength+1),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := paths.Resolve("/target", rel)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscape))
		})
	}
}

func TestCheckSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real", "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "real", "link")))
	fsys := filesystem.NewOS()

	tests := []struct {
		rel     string
		final   bool
		escapes bool
	}{
		{"real/sub/new.txt", true, false},
		{"missing/deeper/new.txt", true, false},
		{"file.txt/below", true, false},
		{"real/link/x.txt", true, true},
		{"real/link/x.txt", false, true},
		{"real/link", true, true},
		{"real/link", false, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s final=%v", tt.rel, tt.final), func(t *testing.T) {
			err := paths.CheckSymlinks(fsys, root, tt.rel, tt.final)
			if tt.escapes {
				assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscape), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveIn(t *testing.T) {
	root := t.TempDir()
	fsys := filesystem.NewOS()

	got, err := paths.ResolveIn(fsys, root, "a/b.txt", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b.txt"), got)

	_, err = paths.ResolveIn(fsys, root, "../b.txt", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscape))
}
