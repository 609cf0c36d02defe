package types

import (
	"io/fs"
)

// FS is the filesystem surface the walker, the codecs' drivers and the
// change-set applier run on. Paths are native (filepath) paths.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow a final symlink; implementations without
	// symlinks may answer with Stat.
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	// ReadDir returns entries sorted by name.
	ReadDir(name string) ([]fs.DirEntry, error)

	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
}
