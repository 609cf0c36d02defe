package paths

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// MaxPathLength bounds the length of an entry path.
const MaxPathLength = 4096

// Validate checks that rel is a usable relative entry path: not empty, no
// NUL bytes, not absolute, and not climbing out through "..".
// Backslashes are treated as separators.
func Validate(rel string) error {
	if rel == "" {
		return errors.New(errors.ErrPathEscape, "path cannot be empty")
	}
	if strings.Contains(rel, "\x00") {
		return errors.New(errors.ErrPathEscape, "path contains null bytes").
			WithDetail("path", rel)
	}
	if len(rel) > MaxPathLength {
		return errors.New(errors.ErrPathEscape, "path exceeds maximum length").
			WithDetail("path", rel)
	}

	native := toNative(rel)
	if filepath.IsAbs(native) || strings.HasPrefix(native, string(filepath.Separator)) || filepath.VolumeName(native) != "" {
		return errors.Newf(errors.ErrPathEscape, "path %q is absolute", rel).
			WithDetail("path", rel)
	}
	if !filepath.IsLocal(native) {
		return errors.Newf(errors.ErrPathEscape, "path %q escapes the target directory", rel).
			WithDetail("path", rel)
	}
	if filepath.Clean(native) == "." {
		return errors.Newf(errors.ErrPathEscape, "path %q names the target directory itself", rel).
			WithDetail("path", rel)
	}
	return nil
}

// Resolve validates rel and joins it to root.
func Resolve(root, rel string) (string, error) {
	if err := Validate(rel); err != nil {
		return "", err
	}
	return filepath.Join(root, toNative(rel)), nil
}

// ResolveIn is Resolve followed by CheckSymlinks on fsys.
func ResolveIn(fsys types.FS, root, rel string, final bool) (string, error) {
	abs, err := Resolve(root, rel)
	if err != nil {
		return "", err
	}
	if err := CheckSymlinks(fsys, root, rel, final); err != nil {
		return "", err
	}
	return abs, nil
}

// CheckSymlinks walks the existing directories between root and rel and
// fails with ErrPathEscape at the first symlink, since a link can point
// outside root. With final set the last component is checked too, for
// targets that are written through rather than renamed or removed.
// Components that do not exist yet end the check. rel must already
// have passed Validate.
func CheckSymlinks(fsys types.FS, root, rel string, final bool) error {
	parts := strings.Split(filepath.Clean(toNative(rel)), string(filepath.Separator))
	cur := root
	for i, part := range parts {
		last := i == len(parts)-1
		if last && !final {
			return nil
		}
		cur = filepath.Join(cur, part)

		info, err := fsys.Lstat(cur)
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", cur).
				WithDetail("path", rel)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return errors.Newf(errors.ErrPathEscape, "path %q goes through symlink %s", rel, strings.Join(parts[:i+1], "/")).
				WithDetail("path", rel)
		}
		// A file in the middle of the path makes the later write fail on
		// its own; nothing below it can be a link.
		if !last && !info.IsDir() {
			return nil
		}
	}
	return nil
}

func toNative(rel string) string {
	return filepath.FromSlash(strings.ReplaceAll(rel, "\\", "/"))
}
