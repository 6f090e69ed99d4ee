package specprep

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := writer.Write(sample, prefix, false)
//	if errors.Is(err, specprep.ErrFileExists) {
//	    // an output from a previous run is in the way
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileExists indicates an output file already exists and clobbering is disabled.
	// It wraps fs.ErrExist so os-level checks keep working.
	ErrFileExists = fmt.Errorf("file exists: %w", fs.ErrExist)

	// ErrCatalogMatch indicates a spectrum could not be matched to exactly one catalog row.
	ErrCatalogMatch = errors.New("no unique catalog match")

	// ErrUnknownCluster indicates a spectrum lives under a cluster with no tabulated distance.
	ErrUnknownCluster = errors.New("unknown cluster")

	// ErrShapeMismatch indicates matrices or catalogs disagree on row or pixel counts.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrSchemaMismatch indicates two catalogs cannot be stacked column by column.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrNoSpectra indicates a sample selected no stars at all.
	ErrNoSpectra = errors.New("no spectra")

	// ErrInvalidFITS indicates an input file is not a usable FITS file.
	ErrInvalidFITS = errors.New("invalid FITS data")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrFileExists):
		return ExitFileExists
	case errors.Is(err, ErrCatalogMatch),
		errors.Is(err, ErrUnknownCluster),
		errors.Is(err, ErrShapeMismatch),
		errors.Is(err, ErrSchemaMismatch):
		return ExitDataIntegrity
	case errors.Is(err, ErrNoSpectra),
		errors.Is(err, ErrInvalidFITS),
		errors.Is(err, fs.ErrNotExist):
		return ExitInputError
	}

	// Cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"invalid argument",
	"required flag",
}
