package specprep

import (
	"errors"
	"fmt"
)

// Sample is a catalog together with its flux and flux-uncertainty matrices.
// Row i of Catalog, Flux and FluxUncertainty always describe the same star.
type Sample struct {
	// Name identifies the sample in logs and summaries (e.g. "parallax").
	Name string

	Catalog         *Catalog
	Flux            *Matrix
	FluxUncertainty *Matrix

	// QC summarizes the quality-control pass that produced the matrices.
	// It is zero for merged samples.
	QC QCReport
}

// QCReport counts what the quality-control pass changed.
type QCReport struct {
	// InputPixels is the pixel count before any column was dropped.
	InputPixels int

	// DroppedPixels is the number of pixel columns removed because every
	// star had non-positive flux there.
	DroppedPixels int

	// ReplacedUncertainties counts uncertainties set to UncertaintySentinel
	// because they were non-positive or non-finite themselves.
	ReplacedUncertainties int

	// ReplacedFluxes counts fluxes set to FluxSentinel.
	ReplacedFluxes int
}

// Validate checks the row and shape invariants of the sample.
// It returns a multi-error if multiple validation failures occur.
func (s *Sample) Validate() error {
	if s.Catalog == nil || s.Flux == nil || s.FluxUncertainty == nil {
		return fmt.Errorf("sample %q is incomplete: %w", s.Name, ErrShapeMismatch)
	}

	var errs []error
	if s.Catalog.NumRows() != s.Flux.Rows {
		errs = append(errs, fmt.Errorf("catalog has %d rows, flux has %d: %w", s.Catalog.NumRows(), s.Flux.Rows, ErrShapeMismatch))
	}
	if !s.Flux.SameShape(s.FluxUncertainty) {
		errs = append(errs, fmt.Errorf("flux is %dx%d, uncertainty is %dx%d: %w",
			s.Flux.Rows, s.Flux.Cols, s.FluxUncertainty.Rows, s.FluxUncertainty.Cols, ErrShapeMismatch))
	}
	if len(s.Flux.Data) != s.Flux.Rows*s.Flux.Cols || len(s.FluxUncertainty.Data) != s.FluxUncertainty.Rows*s.FluxUncertainty.Cols {
		errs = append(errs, fmt.Errorf("matrix storage does not match its dimensions: %w", ErrShapeMismatch))
	}
	return errors.Join(errs...)
}

// NumStars returns the number of rows in the sample.
func (s *Sample) NumStars() int {
	if s.Flux == nil {
		return 0
	}
	return s.Flux.Rows
}

// NumPixels returns the number of pixel columns in the sample.
func (s *Sample) NumPixels() int {
	if s.Flux == nil {
		return 0
	}
	return s.Flux.Cols
}
