package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/f2llm/pkg/types"
)

// tempSuffix names the sibling file WriteAtomic writes before renaming.
const tempSuffix = ".f2llm-tmp"

// WriteAtomic writes data next to name and renames it into place, so a
// reader never sees a half-written file. The temporary file is removed
// when either step fails.
func WriteAtomic(fsys types.FS, name string, data []byte, perm fs.FileMode) error {
	tmp := name + tempSuffix
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, name); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}
