package filesystem

import (
	"io/fs"
	"sort"

	"github.com/arthur-debert/f2llm/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs, usually a MemMapFs in tests.
type aferoFS struct {
	backing afero.Fs
}

// NewAferoFS wraps backing as a types.FS.
func NewAferoFS(backing afero.Fs) types.FS {
	return &aferoFS{backing: backing}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.backing.Stat(name)
}

// Lstat uses afero.Lstater when the backing filesystem has one
// (OsFs, BasePathFs); MemMapFs has no symlinks, so Stat is exact there.
func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.backing.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.backing.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(a.backing, name)
}

// ReadDir converts afero's FileInfo listing and sorts it, since not every
// afero backend returns names in order.
func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.backing, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.backing, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.backing.MkdirAll(path, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.backing.Remove(name)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.backing.Rename(oldpath, newpath)
}
