// Package checksum computes the SHA-256 digests recorded for written outputs.
//
// Digests are taken incrementally by teeing output through a Writer while it
// is being written to disk:
//
//	w := checksum.New().NewWriter()
//	_, err := io.Copy(io.MultiWriter(file, w), src)
//	digest, size := w.Sum(), w.Size()
//
// SHA256 is safe for concurrent use by multiple goroutines; a Writer is not.
package checksum
