// Package walker enumerates the files of a directory tree in a stable,
// depth-first order, pruning every subtree an ignore.Matcher rejects.
package walker

import (
	"path"
	"path/filepath"

	f2errors "github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/ignore"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// File is one file emitted by a walk.
type File struct {
	// RelPath is slash-separated and relative to the walk root.
	RelPath string
	// AbsPath is the cleaned absolute path on the walked filesystem.
	AbsPath string
}

// Walker traverses one root. Each Walk call re-reads the tree; the
// sequence it produces is not cached.
type Walker struct {
	fs      types.FS
	root    string
	matcher *ignore.Matcher
	exclude string
}

// New creates a walker over root. exclude is the path of a file that must
// never be emitted (typically the archive being written); empty disables it.
// A nil matcher ignores nothing.
func New(fsys types.FS, root string, matcher *ignore.Matcher, exclude string) *Walker {
	w := &Walker{fs: fsys, root: absClean(root), matcher: matcher}
	if exclude != "" {
		w.exclude = absClean(exclude)
	}
	return w
}

// Root returns the absolute root of the walk.
func (w *Walker) Root() string {
	return w.root
}

// Walk calls fn for each surviving file in traversal order: directory
// entries sorted by name, files and subdirectories interleaved, depth-first.
// An error from fn stops the walk and is returned as is.
func (w *Walker) Walk(fn func(File) error) error {
	logger := logging.GetLogger("walker")

	info, err := w.fs.Stat(w.root)
	if err != nil {
		return f2errors.Wrapf(err, f2errors.ErrNotFound, "cannot access %s", w.root).
			WithDetail("path", w.root)
	}
	if !info.IsDir() {
		return f2errors.Newf(f2errors.ErrNotADirectory, "%s is not a directory", w.root).
			WithDetail("path", w.root)
	}

	var visited, emitted, pruned int
	err = w.walkDir(w.root, "", fn, &visited, &emitted, &pruned)
	logger.Debug().
		Str("root", w.root).
		Int("dirs", visited).
		Int("files", emitted).
		Int("pruned", pruned).
		Msg("Walk finished")
	return err
}

func (w *Walker) walkDir(dir, rel string, fn func(File) error, visited, emitted, pruned *int) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return f2errors.Wrapf(err, f2errors.ErrFileRead, "failed to list %s", dir).
			WithDetail("path", dir)
	}
	*visited++

	// os.ReadDir and the afero adapter both return entries sorted by name.
	for _, entry := range entries {
		name := entry.Name()
		childRel := name
		if rel != "" {
			childRel = path.Join(rel, name)
		}
		childAbs := filepath.Join(dir, name)

		if entry.IsDir() {
			if w.matcher.Match(childRel) || w.matcher.Match(name) {
				*pruned++
				continue
			}
			if err := w.walkDir(childAbs, childRel, fn, visited, emitted, pruned); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if w.exclude != "" && childAbs == w.exclude {
			continue
		}
		if w.matcher.Match(childRel) {
			continue
		}

		*emitted++
		if err := fn(File{RelPath: childRel, AbsPath: childAbs}); err != nil {
			return err
		}
	}
	return nil
}

// Collect runs Walk and returns every emitted file in order.
func (w *Walker) Collect() ([]File, error) {
	var files []File
	err := w.Walk(func(f File) error {
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func absClean(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
