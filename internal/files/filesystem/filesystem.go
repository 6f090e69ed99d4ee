package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider gives loaders read access to input files.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Glob returns the regular files matching pattern, sorted by path.
	// Pattern syntax is that of path/filepath.Match; '*' does not cross
	// directory separators.
	Glob(pattern string) ([]string, error)
}
