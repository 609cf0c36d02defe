// Package paths confines archive and change-set paths to a target root.
//
// Archive entries name files with untrusted relative paths. Resolve is the
// only way the rest of f2llm turns such a path into a filesystem location,
// and it refuses anything that would land outside the root.
package paths
