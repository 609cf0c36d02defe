package f2llm

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Flatten a directory into one archive file, and back"
	MsgInspectShort    = "List the entries of an archive"
	MsgConfigShort     = "Print the effective configuration as TOML"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagConfig   = "Read configuration from this TOML (or .yaml) file as well"
	MsgFlagColor    = "Color output: auto, always or never (overrides output.color)"
	MsgFlagGenerate = "Treat <input> as an archive and write its files into <output>"
	MsgFlagApply    = "Treat <input> as a change set and apply it to the existing <output> directory"
	MsgFlagJSON     = "Use the JSON archive format (same as --format json)"
	MsgFlagFormat   = "Archive format: text, json or banner (default from archive.format; detected when decoding)"

	// Status messages
	MsgVersionFormat = "f2llm version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrArgs         = "expected <input> and <output>, got %d argument(s)"
	MsgErrConfigLoad   = "failed to load configuration: %w"
	MsgErrUnknownShell = "unsupported shell %q"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/change-set.txt
	msgChangeSetRaw string
	MsgChangeSet    = strings.TrimSpace(msgChangeSetRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

// Help topics shown by "f2llm help <topic>"
//
//go:embed topics/*.md
var topicFiles embed.FS
