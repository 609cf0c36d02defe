package core

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/config"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/filesystem"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// CompressedSuffix marks archive names that are zstd-compressed in auto mode.
const CompressedSuffix = ".zst"

func fsOrDefault(fsys types.FS) types.FS {
	if fsys == nil {
		return filesystem.NewOS()
	}
	return fsys
}

func configOrDefault(cfg *config.Config) (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	return config.Default()
}

func requireDir(fsys types.FS, path, role string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "%s %s does not exist", role, path).
			WithDetail("path", path)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrNotADirectory, "%s %s is not a directory", role, path).
			WithDetail("path", path)
	}
	return nil
}

func requireFile(fsys types.FS, path, role string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "%s %s does not exist", role, path).
			WithDetail("path", path)
	}
	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrNotAFile, "%s %s is not a file", role, path).
			WithDetail("path", path)
	}
	return nil
}

// shouldCompress applies the archive.compress mode to an output name.
func shouldCompress(mode, output string) bool {
	switch mode {
	case config.CompressAlways:
		return true
	case config.CompressNever:
		return false
	default:
		return strings.HasSuffix(strings.ToLower(output), CompressedSuffix)
	}
}

// loadArchive reads, decompresses and decodes an archive file. An empty
// format is detected from the content.
func loadArchive(fsys types.FS, path string, format archive.Format, marker string) ([]types.Entry, archive.Format, bool, error) {
	if err := requireFile(fsys, path, "archive"); err != nil {
		return nil, "", false, err
	}
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, "", false, errors.Wrapf(err, errors.ErrFileRead, "failed to read archive %s", path).
			WithDetail("path", path)
	}
	compressed := archive.IsCompressed(raw)
	data, err := archive.Decompress(raw)
	if err != nil {
		return nil, "", false, err
	}

	if format == "" {
		format = archive.Detect(data)
	}
	codec, err := archive.NewCodec(format, archive.Options{Marker: marker})
	if err != nil {
		return nil, "", false, err
	}
	entries, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", false, err
	}
	return entries, format, compressed, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func ensureParent(fsys types.FS, name string) error {
	dir := filepath.Dir(name)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	return nil
}
