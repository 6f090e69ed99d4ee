// Package specprep defines the public types, interfaces and sentinel errors
// shared by the specprep pipeline: the catalog and matrix data model, the
// Sample triple that flows from loaders to writers, and the exit-code mapping
// used by the command-line entry point.
package specprep
