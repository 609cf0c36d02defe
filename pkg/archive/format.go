package archive

import (
	"bytes"
	"io"
	"strings"

	f2errors "github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// Format names a wire format.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatBanner Format = "banner"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatBanner}

// Codec converts between entries and one wire format.
type Codec interface {
	Format() Format
	Encode(w io.Writer, entries []types.Entry) error
	Decode(r io.Reader) ([]types.Entry, error)
}

// Options tune codec construction.
type Options struct {
	// Marker is the text-format path line prefix. Empty means DefaultMarker.
	Marker string
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", f2errors.Newf(f2errors.ErrInvalidInput, "unknown archive format %q", s).
		WithDetail("format", s)
}

// NewCodec returns the codec for format.
func NewCodec(format Format, opts Options) (Codec, error) {
	switch format {
	case FormatText:
		return NewTextCodec(opts.Marker)
	case FormatJSON:
		return NewJSONCodec(), nil
	case FormatBanner:
		return NewBannerCodec(), nil
	default:
		return nil, f2errors.Newf(f2errors.ErrInvalidInput, "unknown archive format %q", format).
			WithDetail("format", string(format))
	}
}

// Detect guesses the format of an uncompressed archive: json when the first
// non-space byte opens an object, banner when it starts with the banner
// rule, text otherwise.
func Detect(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case len(trimmed) > 0 && trimmed[0] == '{':
		return FormatJSON
	case bytes.HasPrefix(data, []byte(bannerHeaderPrefix)):
		return FormatBanner
	default:
		return FormatText
	}
}
