// Package files groups the file access used by the sample loaders.
//
// Sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//
// # Usage
//
//	import "github.com/specprep/specprep/internal/files/filesystem"
//
//	fsProvider := filesystem.NewOSFileSystem()
//	spectra, err := fsProvider.Glob("APOGEE/Clusters/*/*.fits")
//
// Tests substitute filesystem.NewMemoryFileSystem to serve generated FITS
// fixtures without touching the disk.
package files
