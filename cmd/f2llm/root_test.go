// Test Type: Integration Test
// Description: Tests for the f2llm command line, run against real temporary directories

package f2llm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/f2llm/cmd/f2llm"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the command away from the user's config, state and terminal.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := f2llm.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPackAndGenerate(t *testing.T) {
	isolate(t)
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		".gitignore":    "*.log\n",
		"main.go":       "package main\n",
		"docs/guide.md": "# Guide\n",
		"debug.log":     "noise",
	})
	archivePath := filepath.Join(t.TempDir(), "bundle.json")

	out, err := run(t, src, archivePath, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "Parsing complete. Output written to")

	restored := filepath.Join(t.TempDir(), "restored")
	out, err = run(t, archivePath, restored, "--generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Files generated in")

	assert.Equal(t, "package main\n", readFile(t, filepath.Join(restored, "main.go")))
	assert.Equal(t, "# Guide\n", readFile(t, filepath.Join(restored, "docs", "guide.md")))
	assert.Equal(t, "*.log\n", readFile(t, filepath.Join(restored, ".gitignore")))
	assert.NoFileExists(t, filepath.Join(restored, "debug.log"))
}

func TestPack_ArchiveInsideSource(t *testing.T) {
	isolate(t)
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.txt": "a"})
	archivePath := filepath.Join(src, "bundle.txt")

	_, err := run(t, src, archivePath)
	require.NoError(t, err)
	_, err = run(t, src, archivePath)
	require.NoError(t, err)

	assert.Equal(t, "##F2LLM## a.txt\na\n", readFile(t, archivePath))
}

func TestApply(t *testing.T) {
	isolate(t)
	target := t.TempDir()
	writeFiles(t, target, map[string]string{"a.txt": "old", "stale.txt": "x"})
	changes := filepath.Join(t.TempDir(), "changes.json")
	writeFiles(t, filepath.Dir(changes), map[string]string{
		"changes.json": `{"moved": [{"old": "a.txt", "new": "b/a.txt"}],
			"modified": [{"file_path": "b/a.txt", "content": "X"}],
			"deleted": ["stale.txt", "missing.txt"]}`,
	})

	out, err := run(t, changes, target, "--apply", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: planned operations")
	assert.FileExists(t, filepath.Join(target, "a.txt"))

	out, err = run(t, changes, target, "--apply")
	require.NoError(t, err)
	assert.Contains(t, out, "Change set applied")
	assert.Equal(t, "X", readFile(t, filepath.Join(target, "b", "a.txt")))
	assert.NoFileExists(t, filepath.Join(target, "a.txt"))
	assert.NoFileExists(t, filepath.Join(target, "stale.txt"))
}

func TestUsageErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"in.json": `{"added": [{"file_path": "x.txt", "content": "x"}]}`})
	in := filepath.Join(dir, "in.json")
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0755))

	t.Run("apply and generate conflict", func(t *testing.T) {
		_, err := run(t, in, target, "--apply", "--generate")
		require.Error(t, err)
		assert.NoFileExists(t, filepath.Join(target, "x.txt"))
	})

	t.Run("json and apply conflict", func(t *testing.T) {
		_, err := run(t, in, target, "--apply", "--json")
		require.Error(t, err)
		assert.NoFileExists(t, filepath.Join(target, "x.txt"))
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := run(t, in)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
	})

	t.Run("apply needs an existing target", func(t *testing.T) {
		_, err := run(t, in, filepath.Join(dir, "nope"), "--apply")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
		assert.NoDirExists(t, filepath.Join(dir, "nope"))
	})

	t.Run("pack needs a directory", func(t *testing.T) {
		_, err := run(t, in, filepath.Join(dir, "out.txt"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotADirectory))
		assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
	})

	t.Run("generate needs a file", func(t *testing.T) {
		_, err := run(t, target, filepath.Join(dir, "gen"), "--generate")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotAFile))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, dir, filepath.Join(t.TempDir(), "out"), "--format", "xml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
	})
}

func TestInspect(t *testing.T) {
	isolate(t)
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.go": "package a"})
	archivePath := filepath.Join(t.TempDir(), "bundle.txt.zst")
	_, err := run(t, src, archivePath)
	require.NoError(t, err)

	out, err := run(t, "inspect", archivePath)
	require.NoError(t, err)
	assert.Contains(t, out, "compression: **zstd**")
	assert.Contains(t, out, "| `a.go` | 9 |")
}

func TestConfigAndVersion(t *testing.T) {
	isolate(t)
	t.Setenv("F2LLM_ARCHIVE_MARKER", "@@FILE@@")

	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[archive]")
	assert.Contains(t, out, "@@FILE@@")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "f2llm version dev")
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	out, err := run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "formats")
	assert.Contains(t, out, "--dry-run")

	out, err = run(t, "help", "ignore-rules")
	require.NoError(t, err)
	assert.Contains(t, out, "# Ignore rules")
}

func TestColorFlagIsValidated(t *testing.T) {
	isolate(t)
	_, err := run(t, "config", "--color", "purple")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	out, err := run(t, "config", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "never")
}
