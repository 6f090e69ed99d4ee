// Package quality implements the per-pixel quality-control policy shared by
// every sample loader.
//
// The policy is applied in a fixed order:
//  1. Drop every pixel column whose flux is <= 0 for all stars.
//  2. Replace uncertainties that are <= 0 or non-finite with specprep.UncertaintySentinel.
//  3. Replace fluxes that are <= 0 or non-finite with specprep.FluxSentinel and
//     force the paired uncertainty to specprep.UncertaintySentinel.
//
// Afterwards no flux and no uncertainty is non-positive or non-finite.
package quality

import (
	"fmt"
	"math"

	"github.com/specprep/specprep/pkg/specprep"
)

// Clean applies the quality-control policy and returns new matrices.
// The inputs are left untouched.
func Clean(flux, uncertainty *specprep.Matrix) (*specprep.Matrix, *specprep.Matrix, specprep.QCReport, error) {
	if !flux.SameShape(uncertainty) {
		return nil, nil, specprep.QCReport{}, fmt.Errorf("flux is %dx%d, uncertainty is %dx%d: %w",
			flux.Rows, flux.Cols, uncertainty.Rows, uncertainty.Cols, specprep.ErrShapeMismatch)
	}

	report := specprep.QCReport{InputPixels: flux.Cols}

	keep := InformativeColumns(flux)
	for _, k := range keep {
		if !k {
			report.DroppedPixels++
		}
	}

	cleanFlux, err := flux.KeepColumns(keep)
	if err != nil {
		return nil, nil, report, err
	}
	cleanUnc, err := uncertainty.KeepColumns(keep)
	if err != nil {
		return nil, nil, report, err
	}

	for i := 0; i < cleanUnc.Rows; i++ {
		for j := 0; j < cleanUnc.Cols; j++ {
			if unphysical(cleanUnc.At(i, j)) {
				cleanUnc.Set(i, j, specprep.UncertaintySentinel)
				report.ReplacedUncertainties++
			}
		}
	}

	for i := 0; i < cleanFlux.Rows; i++ {
		for j := 0; j < cleanFlux.Cols; j++ {
			if unphysical(cleanFlux.At(i, j)) {
				cleanFlux.Set(i, j, specprep.FluxSentinel)
				cleanUnc.Set(i, j, specprep.UncertaintySentinel)
				report.ReplacedFluxes++
			}
		}
	}

	return cleanFlux, cleanUnc, report, nil
}

// InformativeColumns returns a mask that is false for columns where every
// star's flux is <= 0. NaN compares false against zero, so a column holding
// a NaN is kept and cleaned later. A matrix without rows keeps every column.
func InformativeColumns(flux *specprep.Matrix) []bool {
	keep := make([]bool, flux.Cols)
	if flux.Rows == 0 {
		for j := range keep {
			keep[j] = true
		}
		return keep
	}
	for i := 0; i < flux.Rows; i++ {
		row := flux.Row(i)
		for j, v := range row {
			if !(v <= 0) {
				keep[j] = true
			}
		}
	}
	return keep
}

func unphysical(v float64) bool {
	return v <= 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
