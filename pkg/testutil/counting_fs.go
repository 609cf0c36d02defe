package testutil

import (
	"io/fs"
	"sync"

	"github.com/arthur-debert/f2llm/pkg/types"
)

// CountingFS wraps a types.FS and records every ReadDir and ReadFile call.
// It is safe for concurrent use.
type CountingFS struct {
	types.FS

	mu        sync.Mutex
	dirReads  []string
	fileReads []string
	failReads map[string]error
}

// NewCountingFS wraps inner.
func NewCountingFS(inner types.FS) *CountingFS {
	return &CountingFS{FS: inner, failReads: make(map[string]error)}
}

// FailRead makes every ReadFile of name return err.
func (c *CountingFS) FailRead(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failReads[name] = err
}

func (c *CountingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	c.mu.Lock()
	c.dirReads = append(c.dirReads, name)
	c.mu.Unlock()
	return c.FS.ReadDir(name)
}

func (c *CountingFS) ReadFile(name string) ([]byte, error) {
	c.mu.Lock()
	c.fileReads = append(c.fileReads, name)
	err := c.failReads[name]
	c.mu.Unlock()
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return c.FS.ReadFile(name)
}

// DirReads returns the directories listed so far, in call order.
func (c *CountingFS) DirReads() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.dirReads...)
}

// FileReads returns the files read so far, in call order.
func (c *CountingFS) FileReads() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.fileReads...)
}
