package f2llm

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/f2llm/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold makes help headings bold when stdout is a color terminal.
func formatBold(s string) string {
	if !ui.IsRich(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting registers the functions used by the usage template.
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"boldUpper": formatBoldUpper,
	})
}
