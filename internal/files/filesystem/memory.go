package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Relative paths are resolved against the root given to NewMemoryFileSystem.
type MemoryFileSystem struct {
	files map[string]*memoryFile // map of absolute path -> file
	root  string                 // root directory path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = &memoryFile{info: dirInfo(root)}
	return mfs
}

// AddFile adds a text file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileBytes(filePath, []byte(content))
}

// AddFileBytes adds a binary file to the in-memory filesystem.
// Parent directories are created implicitly.
func (mfs *MemoryFileSystem) AddFileBytes(filePath string, content []byte) {
	absPath := mfs.resolve(filePath)

	mfs.files[absPath] = &memoryFile{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}

	mfs.ensureDirectoriesExist(absPath)
}

// resolve turns a possibly relative path into an absolute virtual path.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "." || p == "" {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == mfs.root {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = &memoryFile{info: dirInfo(dir)}
	mfs.ensureDirectoriesExist(dir)
}

func dirInfo(p string) *memoryFileInfo {
	return &memoryFileInfo{
		name:    path.Base(p),
		mode:    0755 | fs.ModeDir,
		modTime: time.Now(),
		isDir:   true,
	}
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return file.content, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return file.info, nil
}

// Glob implements FileSystemProvider.Glob.
// Matches are returned in the same form as the pattern: relative patterns
// yield paths relative to the root.
func (mfs *MemoryFileSystem) Glob(pattern string) ([]string, error) {
	if _, err := path.Match(filepath.ToSlash(pattern), ""); err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	relative := !path.IsAbs(filepath.ToSlash(pattern))
	absPattern := mfs.resolve(pattern)

	prefix := mfs.root
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var matches []string
	for p, file := range mfs.files {
		if file.info.IsDir() {
			continue
		}
		ok, _ := path.Match(absPattern, p)
		if !ok {
			continue
		}
		if relative {
			p = strings.TrimPrefix(p, prefix)
		}
		matches = append(matches, p)
	}

	sort.Strings(matches)
	return matches, nil
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
