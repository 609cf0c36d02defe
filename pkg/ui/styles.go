package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors pick a light or dark variant from the terminal background.
var (
	ErrorColor = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	PathColor  = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	MutedColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}
)

var (
	// ErrorStyle renders the final error line.
	ErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	// PathStyle renders file and directory names inside messages.
	PathStyle = lipgloss.NewStyle().Foreground(PathColor).Italic(true)
	// MutedStyle renders secondary notes such as skipped operations.
	MutedStyle = lipgloss.NewStyle().Foreground(MutedColor)
)
