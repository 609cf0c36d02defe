// Package changeset parses change-set documents and applies them to a tree.
//
// Two document generations exist in the wild and both are accepted:
//
//	legacy   added_files, modified_files, deleted_files, moved_files
//	current  added, modified, unchanged (and deleted)
//
// Deleted entries may be bare strings or {"file_path": ...} records; moves
// may use old_path/new_path or old/new. Every shape is normalized to one
// types.ChangeSet at parse time, so Apply never sees schema drift.
//
// Apply runs moves, then deletes, then modifications, then additions.
// Missing sources of moves and deletes are skipped, not errors. Every path is
// checked against the target root before the first write.
package changeset
