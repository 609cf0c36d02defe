// Package filesystem implements types.FS on the host filesystem and on
// afero, and holds small helpers built on the interface.
package filesystem
