// Package ui renders operation results for the console.
//
// Terminal output uses pterm prefixes and tables, lipgloss styles and
// glamour for Markdown; plain text output carries the same information
// without escape codes so it can be piped or asserted in tests.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/arthur-debert/f2llm/pkg/changeset"
	"github.com/arthur-debert/f2llm/pkg/core"
	"github.com/pterm/pterm"
)

// Renderer writes results to one output.
type Renderer struct {
	out    io.Writer
	format Format
}

// NewRenderer creates a renderer; FormatAuto is resolved against output.
func NewRenderer(format Format, output io.Writer) *Renderer {
	return &Renderer{out: output, format: resolveFormat(format, output)}
}

// Format returns the concrete format in use.
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) rich() bool {
	return r.format == FormatTerminal
}

func (r *Renderer) success(msg string) {
	if r.rich() {
		fmt.Fprintln(r.out, pterm.Success.Sprint(msg))
		return
	}
	fmt.Fprintln(r.out, msg)
}

func (r *Renderer) info(msg string) {
	if r.rich() {
		fmt.Fprintln(r.out, pterm.Info.Sprint(msg))
		return
	}
	fmt.Fprintln(r.out, msg)
}

func (r *Renderer) path(p string) string {
	if r.rich() {
		return PathStyle.Render(p)
	}
	return p
}

func (r *Renderer) muted(s string) string {
	if r.rich() {
		return MutedStyle.Render(s)
	}
	return s
}

// RenderPack reports a written archive.
func (r *Renderer) RenderPack(res *core.PackResult) {
	msg := fmt.Sprintf("Parsing complete. Output written to %s (%d files, %s", r.path(res.OutputFile), len(res.Paths), res.Format)
	if res.Compressed {
		msg += ", zstd"
	}
	msg += ")"
	r.success(msg)
	if res.Placeholders > 0 {
		warn := fmt.Sprintf("%d file(s) could not be read and were stored as placeholders", res.Placeholders)
		if r.rich() {
			fmt.Fprintln(r.out, pterm.Warning.Sprint(warn))
		} else {
			fmt.Fprintln(r.out, "Warning: "+warn)
		}
	}
}

// RenderGenerate reports files written from an archive.
func (r *Renderer) RenderGenerate(res *core.GenerateResult) {
	if res.DryRun {
		r.info(fmt.Sprintf("Dry run: %d files would be generated in %s", len(res.Paths), r.path(res.OutputDir)))
		for _, p := range res.Paths {
			fmt.Fprintln(r.out, "  "+p)
		}
		return
	}
	r.success(fmt.Sprintf("Files generated in %s (%d files)", r.path(res.OutputDir), len(res.Paths)))
}

// RenderApply reports a change-set apply with a summary table.
func (r *Renderer) RenderApply(res *changeset.Result) {
	if res.DryRun {
		r.info("Dry run: planned operations")
		for _, op := range res.Operations {
			line := fmt.Sprintf("  %-6s %s", op.Kind, op.Path)
			if op.From != "" {
				line = fmt.Sprintf("  %-6s %s -> %s", op.Kind, op.From, op.Path)
			}
			if op.Skipped {
				line += " " + r.muted("(missing, skipped)")
			}
			fmt.Fprintln(r.out, line)
		}
	}

	rows := [][]string{
		{"Operation", "Count"},
		{"added", strconv.Itoa(res.Added)},
		{"modified", strconv.Itoa(res.Modified)},
		{"deleted", strconv.Itoa(res.Deleted)},
		{"moved", strconv.Itoa(res.Moved)},
		{"unchanged", strconv.Itoa(res.Unchanged)},
		{"skipped", strconv.Itoa(res.Skipped)},
	}
	if r.rich() {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err == nil {
			fmt.Fprintln(r.out, table)
		}
	} else {
		for _, row := range rows[1:] {
			fmt.Fprintf(r.out, "%-10s %s\n", row[0], row[1])
		}
	}
	if !res.DryRun {
		r.success("Change set applied")
	}
}

// RenderInspect lists archive entries, through glamour on a terminal.
func (r *Renderer) RenderInspect(res *core.InspectResult) {
	r.RenderMarkdown(InspectMarkdown(res))
}

// RenderMarkdown writes md, rendered by glamour on a terminal.
func (r *Renderer) RenderMarkdown(md string) {
	if r.rich() {
		fmt.Fprint(r.out, renderMarkdown(md, 0))
		return
	}
	fmt.Fprint(r.out, md)
}

// RenderError formats err for stderr.
func (r *Renderer) RenderError(err error) string {
	if r.rich() {
		return ErrorStyle.Render("Error: " + err.Error())
	}
	return "Error: " + err.Error()
}
