package services

import (
	"fmt"

	"github.com/specprep/specprep/pkg/specprep"
)

// MergedSampleName is the Name given to samples produced by MergeSamples.
const MergedSampleName = "merged"

// MergeSamples stacks bottom below top. Only the catalog columns both samples
// share are kept, in top's column order. Matrix rows follow catalog rows.
func MergeSamples(top, bottom *specprep.Sample) (*specprep.Sample, error) {
	common := specprep.CommonColumns(top.Catalog, bottom.Catalog)
	if len(common) == 0 {
		return nil, fmt.Errorf("samples %q and %q share no catalog columns: %w", top.Name, bottom.Name, specprep.ErrSchemaMismatch)
	}

	catalog, err := specprep.VStackCatalogs(top.Catalog.KeepColumns(common), bottom.Catalog.KeepColumns(common))
	if err != nil {
		return nil, fmt.Errorf("failed to merge catalogs: %w", err)
	}
	flux, err := specprep.VStackMatrices(top.Flux, bottom.Flux)
	if err != nil {
		return nil, fmt.Errorf("failed to merge flux: %w", err)
	}
	unc, err := specprep.VStackMatrices(top.FluxUncertainty, bottom.FluxUncertainty)
	if err != nil {
		return nil, fmt.Errorf("failed to merge flux uncertainties: %w", err)
	}

	merged := &specprep.Sample{
		Name:            MergedSampleName,
		Catalog:         catalog,
		Flux:            flux,
		FluxUncertainty: unc,
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
