package specprep_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/specprep/specprep/pkg/specprep"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, specprep.ExitSuccess},
		{"general error", errors.New("something went wrong"), specprep.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag --foo"), specprep.ExitUsageError},
		{"unknown command", errors.New(`unknown command "frob" for "specprep"`), specprep.ExitUsageError},
		{"invalid config", fmt.Errorf("DataDir is required: %w", specprep.ErrInvalidConfig), specprep.ExitConfigError},
		{"file exists", fmt.Errorf("writing X: %w", specprep.ErrFileExists), specprep.ExitFileExists},
		{"catalog match", fmt.Errorf("a.fits: %w", specprep.ErrCatalogMatch), specprep.ExitDataIntegrity},
		{"unknown cluster", specprep.ErrUnknownCluster, specprep.ExitDataIntegrity},
		{"shape mismatch", specprep.ErrShapeMismatch, specprep.ExitDataIntegrity},
		{"schema mismatch", specprep.ErrSchemaMismatch, specprep.ExitDataIntegrity},
		{"no spectra", specprep.ErrNoSpectra, specprep.ExitInputError},
		{"invalid fits", specprep.ErrInvalidFITS, specprep.ExitInputError},
		{"missing file", fmt.Errorf("open: %w", os.ErrNotExist), specprep.ExitInputError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := specprep.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrFileExists_WrapsFsErrExist(t *testing.T) {
	if !errors.Is(specprep.ErrFileExists, os.ErrExist) {
		t.Error("ErrFileExists should satisfy errors.Is(err, os.ErrExist)")
	}
}
