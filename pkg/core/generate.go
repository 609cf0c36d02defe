package core

import (
	"context"

	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/config"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/paths"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// GenerateOptions contains options for rebuilding files from an archive
type GenerateOptions struct {
	ArchiveFile string
	OutputDir   string
	// Format forces a decoder; empty detects it from the archive content.
	Format     archive.Format
	DryRun     bool
	Config     *config.Config
	FileSystem types.FS
}

// GenerateResult lists the files written (or, in a dry run, that would be).
type GenerateResult struct {
	OutputDir  string
	Format     archive.Format
	Compressed bool
	Paths      []string
	DryRun     bool
}

// Generate decodes ArchiveFile and writes its entries beneath OutputDir,
// creating it if needed. The archive is decoded and every path checked
// before the first write. When a path repeats, the last entry wins.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	logger := logging.GetLogger("core.generate")
	defer logging.TrackOperation(logger, "generate")()
	fsys := fsOrDefault(opts.FileSystem)
	cfg, err := configOrDefault(opts.Config)
	if err != nil {
		return nil, err
	}

	if info, err := fsys.Stat(opts.OutputDir); err == nil && !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotADirectory, "output %s exists and is not a directory", opts.OutputDir).
			WithDetail("path", opts.OutputDir)
	}

	entries, format, compressed, err := loadArchive(fsys, opts.ArchiveFile, opts.Format, cfg.Archive.Marker)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(entries))
	for i, e := range entries {
		if targets[i], err = paths.ResolveIn(fsys, opts.OutputDir, e.Path, true); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("archive", opts.ArchiveFile).
		Str("output", opts.OutputDir).
		Str("format", string(format)).
		Int("entries", len(entries)).
		Bool("dryRun", opts.DryRun).
		Msg("Generating files")

	result := &GenerateResult{
		OutputDir:  opts.OutputDir,
		Format:     format,
		Compressed: compressed,
		Paths:      types.Archive(entries).Paths(),
		DryRun:     opts.DryRun,
	}
	if opts.DryRun {
		return result, nil
	}

	if err := fsys.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create output directory %s", opts.OutputDir).
			WithDetail("path", opts.OutputDir)
	}
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := ensureParent(fsys, targets[i]); err != nil {
			return nil, err
		}
		if err := fsys.WriteFile(targets[i], e.Content, 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", e.Path).
				WithDetail("path", e.Path)
		}
	}
	return result, nil
}
