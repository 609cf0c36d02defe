package core

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
	"github.com/arthur-debert/f2llm/pkg/walker"
	"golang.org/x/sync/errgroup"
)

// PlaceholderPrefix starts the content of an entry whose file could not be
// packed.
const PlaceholderPrefix = "Error reading file: "

// Placeholder returns the entry content used in place of an unreadable file.
func Placeholder(desc string) []byte {
	return []byte(PlaceholderPrefix + desc)
}

// IsPlaceholder reports whether content is a read-error placeholder.
func IsPlaceholder(content []byte) bool {
	return len(content) >= len(PlaceholderPrefix) && string(content[:len(PlaceholderPrefix)]) == PlaceholderPrefix
}

// readEntries loads every file into an entry, preserving the order of files.
// At most workers reads run at once. Per-file failures become placeholder
// entries; only cancellation of ctx fails the call.
func readEntries(ctx context.Context, fsys types.FS, files []walker.File, workers int, maxBytes int64) ([]types.Entry, int, error) {
	logger := logging.GetLogger("core.read")
	if workers < 1 {
		workers = 1
	}

	entries := make([]types.Entry, len(files))
	failed := make([]bool, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := readOne(fsys, f, maxBytes)
			if err != nil {
				logger.Warn().
					Str("path", f.RelPath).
					Err(err).
					Msg("Could not read file, writing placeholder")
				content = Placeholder(err.Error())
				failed[i] = true
			}
			entries[i] = types.Entry{Path: f.RelPath, Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	placeholders := 0
	for _, f := range failed {
		if f {
			placeholders++
		}
	}
	return entries, placeholders, nil
}

func readOne(fsys types.FS, f walker.File, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		info, err := fsys.Stat(f.AbsPath)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxBytes {
			return nil, fmt.Errorf("file exceeds %d bytes", maxBytes)
		}
	}
	data, err := fsys.ReadFile(f.AbsPath)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s is not valid UTF-8 text", f.RelPath)
	}
	return data, nil
}
