// Package archive encodes file entries into a single flat archive and
// decodes them back.
//
// Three wire formats are supported, all in both directions:
//
//	text    "<marker> <path>" line, raw content, one separator newline
//	json    {"files":[{"file_path","notes","content"}]} with fenced content
//	banner  the "====" / "File:" / "Content:" / "####" layout of older archives
//
// The text and banner formats carry content verbatim. A file whose content
// holds a line that looks like a marker (or, for banner, the closing "####"
// rule after a blank line) will not survive a round trip; no escaping is
// applied. The json format survives anything except content whose fence
// cannot be told apart from the wrapper fence, see Unwrap.
//
// Archives may be zstd-compressed as a whole; Decompress sniffs the frame
// magic so callers need not know how an archive was written.
package archive
