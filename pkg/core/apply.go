package core

import (
	"context"

	"github.com/arthur-debert/f2llm/pkg/changeset"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// ApplyOptions contains options for applying a change-set file
type ApplyOptions struct {
	ChangeSetFile string
	TargetDir     string
	DryRun        bool
	FileSystem    types.FS
}

// Apply parses ChangeSetFile and applies it to TargetDir, which must exist.
func Apply(ctx context.Context, opts ApplyOptions) (*changeset.Result, error) {
	logger := logging.GetLogger("core.apply")
	defer logging.TrackOperation(logger, "apply")()
	fsys := fsOrDefault(opts.FileSystem)

	if err := requireFile(fsys, opts.ChangeSetFile, "change set"); err != nil {
		return nil, err
	}
	if err := requireDir(fsys, opts.TargetDir, "target directory"); err != nil {
		return nil, err
	}

	cs, err := changeset.ParseFile(fsys, opts.ChangeSetFile)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("changeSet", opts.ChangeSetFile).
		Str("target", opts.TargetDir).
		Bool("dryRun", opts.DryRun).
		Msg("Applying change set")

	return changeset.Apply(ctx, fsys, cs, opts.TargetDir, changeset.Options{DryRun: opts.DryRun})
}
