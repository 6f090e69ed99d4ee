package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Calculator is an interface for computing content checksums.
type Calculator interface {
	// NewWriter returns a Writer that checksums the bytes written to it.
	NewWriter() *Writer
}

// SHA256 implements checksum calculation using SHA-256.
// SHA256 is a zero-size type; pass it by value.
type SHA256 struct{}

var _ Calculator = SHA256{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// NewWriter returns an empty SHA-256 Writer.
func (c SHA256) NewWriter() *Writer {
	return &Writer{h: sha256.New()}
}

// Writer accumulates a digest and a byte count of everything written to it.
type Writer struct {
	h hash.Hash
	n int64
}

// Write implements io.Writer. It never returns an error.
func (w *Writer) Write(p []byte) (int, error) {
	n, _ := w.h.Write(p)
	w.n += int64(n)
	return n, nil
}

// Sum returns the hex digest of the bytes written so far.
func (w *Writer) Sum() string {
	return hex.EncodeToString(w.h.Sum(nil))
}

// Size returns the number of bytes written so far.
func (w *Writer) Size() int64 {
	return w.n
}
