package fitsfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// IsGzip reports whether data starts with the gzip magic bytes.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Decompress inflates gzip data and returns any other input unchanged.
func Decompress(data []byte) ([]byte, error) {
	if !IsGzip(data) {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate gzip stream: %w", err)
	}
	return out, nil
}

// NewGzipWriter wraps w with a gzip compressor. The caller must Close it to
// flush the trailer.
func NewGzipWriter(w io.Writer) (*gzip.Writer, error) {
	return gzip.NewWriterLevel(w, gzip.BestCompression)
}
