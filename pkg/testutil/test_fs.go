package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/f2llm/pkg/filesystem"
	"github.com/arthur-debert/f2llm/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteTree creates every file in files beneath root, creating parent
// directories as needed. Keys are slash-separated relative paths.
func WriteTree(t *testing.T, fs types.FS, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(root, 0755))
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, fs.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, fs.WriteFile(full, []byte(content), 0644))
	}
}

// ReadTree returns every regular file beneath root as a map from
// slash-separated relative path to content.
func ReadTree(t *testing.T, fs types.FS, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	var visit func(dir string)
	visit = func(dir string) {
		entries, err := fs.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			full := filepath.Join(dir, e.Name())
			if e.IsDir() {
				visit(full)
				continue
			}
			data, err := fs.ReadFile(full)
			require.NoError(t, err)
			rel, err := filepath.Rel(root, full)
			require.NoError(t, err)
			out[filepath.ToSlash(rel)] = string(data)
		}
	}
	visit(root)
	return out
}
