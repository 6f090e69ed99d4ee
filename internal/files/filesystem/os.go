package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	// os.Stat returns os.FileInfo which implements fs.FileInfo
	return os.Stat(path)
}

func (p *OSFileSystem) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	// Directories can match patterns like APOGEE/Clusters/*/*
	files := matches[:0]
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", m, err)
		}
		if !info.IsDir() {
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Verify OSFileSystem implements the interface at compile time
var _ FileSystemProvider = (*OSFileSystem)(nil)
