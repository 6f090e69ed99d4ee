// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the read-side operations the sample loaders need
// (reading whole files, stat and glob discovery), enabling testability
// through an in-memory implementation while maintaining compatibility with
// the OS filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
