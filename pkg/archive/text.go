package archive

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	f2errors "github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// DefaultMarker prefixes every path line of a text archive.
const DefaultMarker = "##F2LLM##"

// TextCodec implements the marker-delimited text format.
type TextCodec struct {
	marker string
	re     *regexp.Regexp
}

// NewTextCodec returns a text codec using marker, or DefaultMarker when
// marker is empty. A marker may not contain a line break.
func NewTextCodec(marker string) (*TextCodec, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	if strings.ContainsAny(marker, "\r\n") {
		return nil, f2errors.New(f2errors.ErrInvalidInput, "archive marker must be a single line").
			WithDetail("marker", marker)
	}
	return &TextCodec{
		marker: marker,
		re:     regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(marker) + ` (.+)$`),
	}, nil
}

func (c *TextCodec) Format() Format { return FormatText }

// Encode writes each entry as a marker line, the raw content and one
// separator newline.
func (c *TextCodec) Encode(w io.Writer, entries []types.Entry) error {
	for _, e := range entries {
		if strings.ContainsAny(e.Path, "\r\n") {
			return f2errors.Newf(f2errors.ErrArchiveWrite, "path %q contains a line break", e.Path).
				WithDetail("path", e.Path)
		}
		var buf bytes.Buffer
		buf.Grow(len(c.marker) + len(e.Path) + len(e.Content) + 3)
		buf.WriteString(c.marker)
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte('\n')
		buf.Write(e.Content)
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return f2errors.Wrap(err, f2errors.ErrArchiveWrite, "failed to write archive entry").
				WithDetail("path", e.Path)
		}
	}
	return nil
}

// Decode splits the input on marker lines. Text before the first marker line
// is ignored.
func (c *TextCodec) Decode(r io.Reader) ([]types.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, f2errors.Wrap(err, f2errors.ErrFileRead, "failed to read archive")
	}

	matches := c.re.FindAllSubmatchIndex(data, -1)
	if len(matches) > 0 && matches[0][0] > 0 {
		logger := logging.GetLogger("archive")
		logger.Debug().
			Int("bytes", matches[0][0]).
			Msg("Ignoring text before first marker line")
	}

	entries := make([]types.Entry, 0, len(matches))
	for i, m := range matches {
		p := strings.TrimSuffix(string(data[m[2]:m[3]]), "\r")

		start := m[1]
		if start < len(data) && data[start] == '\n' {
			start++
		}
		end := len(data)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if end < start {
			end = start
		}
		content := data[start:end]
		content = bytes.TrimSuffix(content, []byte("\n"))

		entries = append(entries, types.Entry{
			Path:    p,
			Content: append([]byte(nil), content...),
		})
	}
	return entries, nil
}
