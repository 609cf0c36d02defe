package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/f2llm/cmd/f2llm"
	"github.com/arthur-debert/f2llm/internal/version"
)

func main() {
	rootCmd := f2llm.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "F2LLM",
		Section: "1",
		Source:  "f2llm " + version.Version,
		Manual:  "f2llm manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
