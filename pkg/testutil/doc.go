// Package testutil provides utilities for testing f2llm components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem
//   - CountingFS: wraps a types.FS and records directory and file reads
//   - WriteTree: declarative tree setup from a path to content map
//
// Usage guidelines:
//   - Prefer the in-memory filesystem; use t.TempDir() only for behavior
//     that depends on the real OS (permissions, os.Rename)
//   - All test data should be defined inline, not in external files
package testutil
