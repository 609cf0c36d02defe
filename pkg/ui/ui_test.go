// Test Type: Unit Test
// Description: Tests for plain-text rendering and format selection

package ui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/changeset"
	"github.com/arthur-debert/f2llm/pkg/core"
	"github.com/arthur-debert/f2llm/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := map[string]ui.Format{
		"":       ui.FormatAuto,
		"auto":   ui.FormatAuto,
		"always": ui.FormatTerminal,
		"NEVER":  ui.FormatText,
	}
	for in, want := range tests {
		got, err := ui.ParseColor(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := ui.ParseColor("rainbow")
	assert.Error(t, err)
}

func TestNewRenderer_AutoOnBufferIsText(t *testing.T) {
	r := ui.NewRenderer(ui.FormatAuto, &bytes.Buffer{})
	assert.Equal(t, ui.FormatText, r.Format())
}

func TestRenderPack_Text(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatText, &buf)

	r.RenderPack(&core.PackResult{
		OutputFile:   "out.txt",
		Format:       archive.FormatText,
		Paths:        []string{"a", "b"},
		Placeholders: 1,
	})

	assert.Equal(t,
		"Parsing complete. Output written to out.txt (2 files, text)\n"+
			"Warning: 1 file(s) could not be read and were stored as placeholders\n",
		buf.String())
}

func TestRenderGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatText, &buf)

	r.RenderGenerate(&core.GenerateResult{OutputDir: "out", Paths: []string{"a.txt"}, DryRun: true})
	assert.Equal(t, "Dry run: 1 files would be generated in out\n  a.txt\n", buf.String())

	buf.Reset()
	r.RenderGenerate(&core.GenerateResult{OutputDir: "out", Paths: []string{"a.txt"}})
	assert.Equal(t, "Files generated in out (1 files)\n", buf.String())
}

func TestRenderApply_Text(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatText, &buf)

	r.RenderApply(&changeset.Result{
		Added: 1, Moved: 1, Skipped: 1, DryRun: true,
		Operations: []changeset.Operation{
			{Kind: changeset.OpMove, From: "a.txt", Path: "b/a.txt"},
			{Kind: changeset.OpDelete, Path: "gone.txt", Skipped: true},
			{Kind: changeset.OpAdd, Path: "new.txt"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Dry run: planned operations\n")
	assert.Contains(t, out, "  move   a.txt -> b/a.txt\n")
	assert.Contains(t, out, "  delete gone.txt (missing, skipped)\n")
	assert.Contains(t, out, "added      1\n")
	assert.Contains(t, out, "skipped    1\n")
	assert.NotContains(t, out, "Change set applied")
}

func TestInspectMarkdown(t *testing.T) {
	md := ui.InspectMarkdown(&core.InspectResult{
		ArchiveFile: "bundle.json",
		Format:      archive.FormatJSON,
		Compressed:  true,
		Entries: []core.EntryInfo{
			{Path: "a|b.go", Bytes: 10, Notes: "main"},
			{Path: "bad.bin", Bytes: 25, Placeholder: true},
		},
	})

	assert.Contains(t, md, "# bundle.json")
	assert.Contains(t, md, "Format: **json**, compression: **zstd**, 2 files, 35 bytes")
	assert.Contains(t, md, "| `a\\|b.go` | 10 | main |")
	assert.Contains(t, md, "| `bad.bin` | 25 | read error |")
}

func TestInspectMarkdown_Empty(t *testing.T) {
	md := ui.InspectMarkdown(&core.InspectResult{ArchiveFile: "x", Format: archive.FormatText})
	assert.Contains(t, md, "_The archive is empty._")
}

func TestRenderError_Text(t *testing.T) {
	r := ui.NewRenderer(ui.FormatText, &bytes.Buffer{})
	assert.Equal(t, "Error: boom", r.RenderError(errors.New("boom")))
}

func TestRenderApply_Terminal(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatTerminal, &buf)
	assert.Equal(t, ui.FormatTerminal, r.Format())

	r.RenderApply(&changeset.Result{Added: 2, Deleted: 1})

	out := buf.String()
	assert.Contains(t, out, "Operation")
	assert.Contains(t, out, "deleted")
	assert.Contains(t, out, "Change set applied")
}
