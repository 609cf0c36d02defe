package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/f2llm/cmd/f2llm"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/ui"
)

func main() {
	rootCmd := f2llm.NewRootCmd()
	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		// Red on a terminal, plain when redirected
		fmt.Fprintln(os.Stderr, ui.NewRenderer(ui.FormatAuto, os.Stderr).RenderError(err))
		// Cobra's own flag errors carry no code
		switch errors.GetErrorCode(err) {
		case errors.ErrUsage, errors.ErrUnknown:
			fmt.Fprintln(os.Stderr, "Run 'f2llm --help' for usage.")
		}
		os.Exit(1)
	}
}
