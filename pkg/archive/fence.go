package archive

import (
	"path"
	"strings"
)

const fence = "```"

// LanguageTag returns the fence tag for a file: its extension without the
// leading dot, or "" when it has none.
func LanguageTag(p string) string {
	return strings.TrimPrefix(path.Ext(p), ".")
}

// Wrap fences content with a tag derived from p.
func Wrap(p string, content []byte) string {
	var b strings.Builder
	b.Grow(len(content) + 16)
	b.WriteString(fence)
	b.WriteString(LanguageTag(p))
	b.WriteByte('\n')
	b.Write(content)
	b.WriteByte('\n')
	b.WriteString(fence)
	return b.String()
}

// Unwrap returns the text strictly between the first opening fence line
// (three backticks plus an optional tag) and the last line that is exactly
// three backticks. Content without such a pair is returned unchanged.
func Unwrap(content string) string {
	lines := strings.Split(content, "\n")

	open := -1
	for i, line := range lines {
		if isOpeningFence(line) {
			open = i
			break
		}
	}
	if open < 0 {
		return content
	}

	for i := len(lines) - 1; i > open; i-- {
		if strings.TrimSuffix(lines[i], "\r") != fence {
			continue
		}
		body := lines[open+1 : i]
		// CRLF input: the \r before the closing fence belongs to the break
		if len(body) > 0 && strings.HasSuffix(lines[open], "\r") {
			body = append([]string(nil), body...)
			body[len(body)-1] = strings.TrimSuffix(body[len(body)-1], "\r")
		}
		return strings.Join(body, "\n")
	}
	return content
}

func isOpeningFence(line string) bool {
	if !strings.HasPrefix(line, fence) {
		return false
	}
	tag := strings.TrimSpace(line[len(fence):])
	return !strings.Contains(tag, "`")
}
