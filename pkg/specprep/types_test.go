package specprep_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specprep/specprep/pkg/specprep"
)

func TestDefaultPipelineConfig_IsValid(t *testing.T) {
	cfg := specprep.DefaultPipelineConfig()
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.Clobber, "clobbering is on by default")
	require.Equal(t, "APOGEE-Clusters+Hipparcos", cfg.MergedPrefix)
}

func TestPipelineConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := specprep.DefaultPipelineConfig()
	cfg.DataDir = ""
	cfg.Parallax.TeffMax = 0
	cfg.Parallax.SpectraFormat = "HIP.fits"
	cfg.Cluster.Distances = map[string]specprep.ClusterDistance{"NGC6791": {DistanceKpc: -1}}

	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, specprep.ErrInvalidConfig))

	msg := err.Error()
	require.Contains(t, msg, "DataDir")
	require.Contains(t, msg, "TeffMax")
	require.Contains(t, msg, "SpectraFormat")
	require.Contains(t, msg, "NGC6791")
}

func TestPipelineConfig_DuplicatePrefixes(t *testing.T) {
	cfg := specprep.DefaultPipelineConfig()
	cfg.MergedPrefix = cfg.Cluster.Prefix

	err := cfg.Validate()
	require.ErrorIs(t, err, specprep.ErrInvalidConfig)
	require.Contains(t, err.Error(), "share prefix")
}

func TestSample_Validate(t *testing.T) {
	cat, err := specprep.NewCatalog(&specprep.Column{Name: "A", Format: "D", Values: []interface{}{1.0, 2.0}})
	require.NoError(t, err)

	good := &specprep.Sample{
		Name:            "ok",
		Catalog:         cat,
		Flux:            specprep.NewMatrix(2, 4),
		FluxUncertainty: specprep.NewMatrix(2, 4),
	}
	require.NoError(t, good.Validate())
	require.Equal(t, 2, good.NumStars())
	require.Equal(t, 4, good.NumPixels())

	rows := &specprep.Sample{Catalog: cat, Flux: specprep.NewMatrix(3, 4), FluxUncertainty: specprep.NewMatrix(3, 4)}
	require.ErrorIs(t, rows.Validate(), specprep.ErrShapeMismatch)

	shape := &specprep.Sample{Catalog: cat, Flux: specprep.NewMatrix(2, 4), FluxUncertainty: specprep.NewMatrix(2, 3)}
	require.ErrorIs(t, shape.Validate(), specprep.ErrShapeMismatch)

	missing := &specprep.Sample{Catalog: cat}
	require.ErrorIs(t, missing.Validate(), specprep.ErrShapeMismatch)
}
