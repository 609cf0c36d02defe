package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/f2llm/cmd/f2llm"
)

// Completion files written for packaging, by shell.
var targets = []struct {
	name string
	gen  func(*cobra.Command, io.Writer) error
}{
	{"f2llm.bash", func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) }},
	{"_f2llm", func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) }},
	{"f2llm.fish", func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) }},
	{"f2llm.ps1", func(c *cobra.Command, w io.Writer) error { return c.GenPowerShellCompletionWithDesc(w) }},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <output-dir>\n", os.Args[0])
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	rootCmd := f2llm.NewRootCmd()
	for _, t := range targets {
		if err := write(rootCmd, filepath.Join(dir, t.name), t.gen); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", t.name, err)
			os.Exit(1)
		}
	}
}

func write(root *cobra.Command, path string, gen func(*cobra.Command, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gen(root, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
