package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/f2llm/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto automatically detects the appropriate format based on terminal capabilities
	FormatAuto Format = iota
	// FormatTerminal renders rich terminal output with colors and styling
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseColor maps an output.color value to a Format.
func ParseColor(s string) (Format, error) {
	switch strings.ToLower(s) {
	case config.ColorAuto, "":
		return FormatAuto, nil
	case config.ColorAlways:
		return FormatTerminal, nil
	case config.ColorNever:
		return FormatText, nil
	default:
		return FormatAuto, fmt.Errorf("unknown color mode: %s", s)
	}
}

// IsRich reports whether output would get terminal styling in auto mode.
func IsRich(output *os.File) bool {
	return DetectFormat(output) == FormatTerminal
}

// DetectFormat determines the appropriate output format based on environment and terminal capabilities
func DetectFormat(output *os.File) Format {
	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	// Check terminal color support
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// resolveFormat turns FormatAuto into a concrete format for output.
// Writers that are not files are treated as plain text.
func resolveFormat(format Format, output io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if file, ok := output.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}
