package archive

import (
	"bytes"

	f2errors "github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/klauspost/compress/zstd"
)

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsCompressed reports whether data starts with a zstd frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Compress returns data as a single zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
	if err != nil {
		return nil, f2errors.Wrap(err, f2errors.ErrInternal, "failed to create zstd encoder")
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress inflates data when it is zstd-compressed and returns it
// unchanged otherwise.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, f2errors.Wrap(err, f2errors.ErrInternal, "failed to create zstd decoder")
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, f2errors.Wrap(err, f2errors.ErrArchiveParse, "corrupt zstd archive")
	}
	return out, nil
}
