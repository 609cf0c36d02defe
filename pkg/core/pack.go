package core

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/config"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/filesystem"
	"github.com/arthur-debert/f2llm/pkg/ignore"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
	"github.com/arthur-debert/f2llm/pkg/walker"
)

// PackOptions contains options for packing a directory into an archive
type PackOptions struct {
	InputDir   string
	OutputFile string
	// Format overrides Config.Archive.Format when set.
	Format     archive.Format
	Config     *config.Config
	FileSystem types.FS
}

// PackResult describes a written archive.
type PackResult struct {
	OutputFile   string
	Format       archive.Format
	Compressed   bool
	Paths        []string
	Placeholders int
	Bytes        int
}

// Pack walks InputDir and writes every surviving file to OutputFile.
func Pack(ctx context.Context, opts PackOptions) (*PackResult, error) {
	logger := logging.GetLogger("core.pack")
	defer logging.TrackOperation(logger, "pack")()
	fsys := fsOrDefault(opts.FileSystem)
	cfg, err := configOrDefault(opts.Config)
	if err != nil {
		return nil, err
	}

	if err := requireDir(fsys, opts.InputDir, "input directory"); err != nil {
		return nil, err
	}
	if opts.OutputFile == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output file is required")
	}

	format := opts.Format
	if format == "" {
		if format, err = archive.ParseFormat(cfg.Archive.Format); err != nil {
			return nil, err
		}
	}
	codec, err := archive.NewCodec(format, archive.Options{Marker: cfg.Archive.Marker})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("input", opts.InputDir).
		Str("output", opts.OutputFile).
		Str("format", string(format)).
		Msg("Packing directory")

	matcher, err := ignore.Load(fsys, filepath.Join(opts.InputDir, cfg.Walk.IgnoreFile))
	if err != nil {
		return nil, err
	}
	matcher = matcher.With(cfg.Walk.ExtraIgnore...)

	w := walker.New(fsys, opts.InputDir, matcher, absPath(opts.OutputFile))
	files, err := w.Collect()
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("root", w.Root()).Int("files", len(files)).Int("rules", matcher.Len()).Msg("Walked input")

	entries, placeholders, err := readEntries(ctx, fsys, files, cfg.Walk.ReadWorkers, cfg.Walk.MaxFileBytes)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, entries); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	compressed := shouldCompress(cfg.Archive.Compress, opts.OutputFile)
	if compressed {
		if data, err = archive.Compress(data); err != nil {
			return nil, err
		}
	}

	if dir := filepath.Dir(opts.OutputFile); dir != "" {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
				WithDetail("path", dir)
		}
	}
	if err := filesystem.WriteAtomic(fsys, opts.OutputFile, data, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveWrite, "failed to write archive %s", opts.OutputFile).
			WithDetail("path", opts.OutputFile)
	}

	result := &PackResult{
		OutputFile:   opts.OutputFile,
		Format:       format,
		Compressed:   compressed,
		Paths:        types.Archive(entries).Paths(),
		Placeholders: placeholders,
		Bytes:        len(data),
	}
	logger.Info().
		Int("files", len(entries)).
		Int("placeholders", placeholders).
		Int("bytes", len(data)).
		Bool("compressed", compressed).
		Msg("Archive written")
	return result, nil
}
