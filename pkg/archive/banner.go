package archive

import (
	"io"
	"regexp"
	"strings"

	f2errors "github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/types"
)

var (
	bannerRule         = strings.Repeat("=", 40)
	bannerFooter       = strings.Repeat("#", 40)
	bannerHeaderPrefix = bannerRule + "\nFile: "

	bannerEntry = regexp.MustCompile(`(?s)={40}\nFile: ([^\n]+?)\n={40}\nContent:\n(.*?)\n\n#{40}`)
)

// BannerCodec implements the layout of older archives:
//
//	========================================
//	File: <path>
//	========================================
//	Content:
//	<content>
//
//	########################################
type BannerCodec struct{}

// NewBannerCodec returns the banner codec.
func NewBannerCodec() *BannerCodec {
	return &BannerCodec{}
}

func (c *BannerCodec) Format() Format { return FormatBanner }

func (c *BannerCodec) Encode(w io.Writer, entries []types.Entry) error {
	for _, e := range entries {
		if strings.ContainsAny(e.Path, "\r\n") {
			return f2errors.Newf(f2errors.ErrArchiveWrite, "path %q contains a line break", e.Path).
				WithDetail("path", e.Path)
		}
		var b strings.Builder
		b.WriteString(bannerHeaderPrefix)
		b.WriteString(e.Path)
		b.WriteString("\n")
		b.WriteString(bannerRule)
		b.WriteString("\nContent:\n")
		b.Write(e.Content)
		b.WriteString("\n\n")
		b.WriteString(bannerFooter)
		b.WriteString("\n\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return f2errors.Wrap(err, f2errors.ErrArchiveWrite, "failed to write archive entry").
				WithDetail("path", e.Path)
		}
	}
	return nil
}

func (c *BannerCodec) Decode(r io.Reader) ([]types.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, f2errors.Wrap(err, f2errors.ErrFileRead, "failed to read archive")
	}

	matches := bannerEntry.FindAllSubmatch(data, -1)
	entries := make([]types.Entry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, types.Entry{
			Path:    string(m[1]),
			Content: append([]byte(nil), m[2]...),
		})
	}
	return entries, nil
}
