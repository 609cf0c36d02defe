// Package core implements the f2llm operations the CLI exposes.
//
//	Pack      directory -> archive file
//	Generate  archive file -> directory
//	Apply     change-set file -> existing directory
//	Inspect   archive file -> entry listing
//
// Each operation validates its inputs before touching the filesystem. Pack
// reads files on a bounded worker pool but emits entries in walk order, and a
// file that cannot be packed becomes a placeholder entry instead of failing
// the archive.
package core
