package ui

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/f2llm/pkg/core"
	"github.com/charmbracelet/glamour"
)

// InspectMarkdown renders an archive listing as a Markdown document.
func InspectMarkdown(r *core.InspectResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeCell(r.ArchiveFile))
	compression := "none"
	if r.Compressed {
		compression = "zstd"
	}
	fmt.Fprintf(&b, "Format: **%s**, compression: **%s**, %d files, %d bytes\n\n",
		r.Format, compression, len(r.Entries), r.TotalBytes())

	if len(r.Entries) == 0 {
		b.WriteString("_The archive is empty._\n")
		return b.String()
	}

	b.WriteString("| Path | Bytes | Notes |\n")
	b.WriteString("| --- | ---: | --- |\n")
	for _, e := range r.Entries {
		notes := e.Notes
		if e.Placeholder {
			notes = strings.TrimSpace("read error " + notes)
		}
		fmt.Fprintf(&b, "| `%s` | %d | %s |\n", escapeCell(e.Path), e.Bytes, escapeCell(notes))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// renderMarkdown renders md for a terminal, falling back to the source on
// any renderer error.
func renderMarkdown(md string, width int) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
