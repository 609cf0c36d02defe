package changeset

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/paths"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// OpKind names one filesystem action of an apply.
type OpKind string

const (
	OpMove   OpKind = "move"
	OpDelete OpKind = "delete"
	OpModify OpKind = "modify"
	OpAdd    OpKind = "add"
)

// Operation records one planned or performed action.
type Operation struct {
	Kind OpKind
	// Path is the entry path relative to the root; for moves, the destination.
	Path string
	// From is the move source.
	From string
	// Skipped is set when the source of a move or delete did not exist.
	Skipped bool
}

// Result summarizes an apply.
type Result struct {
	Moved     int
	Deleted   int
	Modified  int
	Added     int
	Unchanged int
	Skipped   int
	DryRun    bool

	Operations []Operation
}

// Options tune Apply.
type Options struct {
	// DryRun plans every operation without touching the filesystem.
	DryRun bool
	// FileMode is used for written files; zero means 0644.
	FileMode fs.FileMode
}

type resolvedMove struct {
	types.Move
	from, to string
}

type resolvedEntry struct {
	types.Entry
	abs string
}

type plan struct {
	moves    []resolvedMove
	deletes  []resolvedEntry
	modifies []resolvedEntry
	adds     []resolvedEntry
}

// Apply applies cs beneath root, which must be an existing directory.
// All entry paths are validated before the first mutation; a path that
// escapes root fails the whole apply with ErrPathEscape and nothing is
// written.
func Apply(ctx context.Context, fsys types.FS, cs *types.ChangeSet, root string, opts Options) (*Result, error) {
	logger := logging.GetLogger("changeset")
	if opts.FileMode == 0 {
		opts.FileMode = 0644
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "target directory %s does not exist", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotADirectory, "%s is not a directory", root).
			WithDetail("path", root)
	}

	if cs.IsEmpty() {
		logger.Info().Str("root", root).Int("unchanged", len(cs.Unchanged)).Msg("Change set is empty, nothing to apply")
		return &Result{DryRun: opts.DryRun, Unchanged: len(cs.Unchanged)}, nil
	}

	p, err := resolve(fsys, cs, root)
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun, Unchanged: len(cs.Unchanged)}

	for _, mv := range p.moves {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		exists, err := pathExists(fsys, mv.from)
		if err != nil {
			return result, err
		}
		op := Operation{Kind: OpMove, Path: mv.NewPath, From: mv.OldPath}
		if !exists {
			logger.Debug().Str("from", mv.OldPath).Msg("Move source missing, skipping")
			op.Skipped = true
			result.Skipped++
			result.Operations = append(result.Operations, op)
			continue
		}
		if !opts.DryRun {
			// Earlier moves can place a symlink on the destination path
			if err := paths.CheckSymlinks(fsys, root, mv.NewPath, false); err != nil {
				return result, err
			}
			if err := ensureParent(fsys, mv.to); err != nil {
				return result, err
			}
			if err := fsys.Rename(mv.from, mv.to); err != nil {
				return result, errors.Wrapf(err, errors.ErrFileMove, "failed to move %s to %s", mv.OldPath, mv.NewPath).
					WithDetail("from", mv.OldPath).
					WithDetail("to", mv.NewPath)
			}
		}
		result.Moved++
		result.Operations = append(result.Operations, op)
	}

	for _, del := range p.deletes {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		op := Operation{Kind: OpDelete, Path: del.Path}
		info, err := fsys.Lstat(del.abs)
		switch {
		case stderrors.Is(err, fs.ErrNotExist):
			logger.Debug().Str("path", del.Path).Msg("Delete target missing, skipping")
			op.Skipped = true
			result.Skipped++
			result.Operations = append(result.Operations, op)
			continue
		case err != nil:
			return result, errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", del.Path).
				WithDetail("path", del.Path)
		case info.IsDir():
			logger.Warn().Str("path", del.Path).Msg("Delete target is a directory, skipping")
			op.Skipped = true
			result.Skipped++
			result.Operations = append(result.Operations, op)
			continue
		}
		if !opts.DryRun {
			if err := paths.CheckSymlinks(fsys, root, del.Path, false); err != nil {
				return result, err
			}
			if err := fsys.Remove(del.abs); err != nil {
				return result, errors.Wrapf(err, errors.ErrFileDelete, "failed to delete %s", del.Path).
					WithDetail("path", del.Path)
			}
		}
		result.Deleted++
		result.Operations = append(result.Operations, op)
	}

	for _, group := range []struct {
		kind    OpKind
		entries []resolvedEntry
		count   *int
	}{
		{OpModify, p.modifies, &result.Modified},
		{OpAdd, p.adds, &result.Added},
	} {
		for _, e := range group.entries {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if !opts.DryRun {
				if err := paths.CheckSymlinks(fsys, root, e.Path, true); err != nil {
					return result, err
				}
				if err := ensureParent(fsys, e.abs); err != nil {
					return result, err
				}
				if err := fsys.WriteFile(e.abs, e.Content, opts.FileMode); err != nil {
					return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", e.Path).
						WithDetail("path", e.Path)
				}
			}
			*group.count++
			result.Operations = append(result.Operations, Operation{Kind: group.kind, Path: e.Path})
		}
	}

	logger.Info().
		Str("root", root).
		Bool("dryRun", opts.DryRun).
		Int("moved", result.Moved).
		Int("deleted", result.Deleted).
		Int("modified", result.Modified).
		Int("added", result.Added).
		Int("unchanged", result.Unchanged).
		Int("skipped", result.Skipped).
		Msg("Change set applied")
	return result, nil
}

// resolve checks every path of cs against root, including symlinks already
// on disk, before anything is changed.
func resolve(fsys types.FS, cs *types.ChangeSet, root string) (*plan, error) {
	p := &plan{}
	for _, mv := range cs.Moved {
		from, err := paths.ResolveIn(fsys, root, mv.OldPath, false)
		if err != nil {
			return nil, err
		}
		to, err := paths.ResolveIn(fsys, root, mv.NewPath, false)
		if err != nil {
			return nil, err
		}
		p.moves = append(p.moves, resolvedMove{Move: mv, from: from, to: to})
	}
	for _, rel := range cs.Deleted {
		abs, err := paths.ResolveIn(fsys, root, rel, false)
		if err != nil {
			return nil, err
		}
		p.deletes = append(p.deletes, resolvedEntry{Entry: types.Entry{Path: rel}, abs: abs})
	}
	for _, group := range []struct {
		in  []types.Entry
		out *[]resolvedEntry
	}{
		{cs.Modified, &p.modifies},
		{cs.Added, &p.adds},
	} {
		for _, e := range group.in {
			abs, err := paths.ResolveIn(fsys, root, e.Path, true)
			if err != nil {
				return nil, err
			}
			*group.out = append(*group.out, resolvedEntry{Entry: e, abs: abs})
		}
	}
	return p, nil
}

func pathExists(fsys types.FS, name string) (bool, error) {
	_, err := fsys.Lstat(name)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", name).
		WithDetail("path", name)
}

func ensureParent(fsys types.FS, name string) error {
	dir := filepath.Dir(name)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	return nil
}
