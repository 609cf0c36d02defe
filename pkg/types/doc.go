// Package types defines the core types and interfaces used throughout f2llm.
// This includes the FS interface every component runs on, the archive Entry,
// and the canonical ChangeSet that all change-set schemas normalize into.
package types
