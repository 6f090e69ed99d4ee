package specprep

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// PipelineConfig contains all parameters needed to run the preparation pipeline.
type PipelineConfig struct {
	// DataDir is the directory the input paths are relative to.
	DataDir string

	// OutputDir is the directory the output prefixes are relative to.
	OutputDir string

	// Clobber allows existing outputs to be replaced.
	Clobber bool

	// Verbose enables detailed logging
	Verbose bool

	Cluster  ClusterSampleConfig
	Parallax ParallaxSampleConfig

	// MergedPrefix names the output of the combined sample.
	MergedPrefix string
}

// ClusterSampleConfig locates the cluster spectra and their master catalog.
type ClusterSampleConfig struct {
	// Catalog is the master catalog FITS file.
	Catalog string

	// SpectraGlob matches one FITS file per star, one directory per cluster.
	SpectraGlob string

	// FileColumn is the catalog column holding the apStar file name.
	FileColumn string

	// SpectrumPrefix is replaced by CatalogPrefix to turn a spectrum file
	// name into the catalog's file name.
	SpectrumPrefix string
	CatalogPrefix  string

	// Distances overrides or extends the built-in cluster distance table.
	Distances map[string]ClusterDistance

	Prefix string
}

// ClusterDistance is a tabulated cluster distance and where it came from.
type ClusterDistance struct {
	DistanceKpc float64
	Source      string
}

// ParallaxSampleConfig locates the parallax catalog and per-star spectra.
type ParallaxSampleConfig struct {
	// Catalog is the (possibly gzipped) master catalog FITS file.
	Catalog string

	// SpectraFormat is a fmt pattern producing a spectrum path from the
	// value of IDColumn, e.g. "APOGEE/aspCap/HIP%v.fits".
	SpectraFormat string

	IDColumn       string
	ParallaxColumn string
	TeffColumn     string
	FlagColumn     string

	// TeffMax is the exclusive upper bound on effective temperature.
	TeffMax float64

	Prefix string
}

// DefaultPipelineConfig returns the configuration that reproduces the
// standard APOGEE working tree layout with clobbering enabled.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DataDir:   ".",
		OutputDir: ".",
		Clobber:   true,
		Cluster: ClusterSampleConfig{
			Catalog:        DefaultClusterCatalog,
			SpectraGlob:    DefaultClusterSpectraGlob,
			FileColumn:     DefaultClusterFileColumn,
			SpectrumPrefix: DefaultSpectrumFilePrefix,
			CatalogPrefix:  DefaultCatalogFilePrefix,
			Prefix:         DefaultClusterPrefix,
		},
		Parallax: ParallaxSampleConfig{
			Catalog:        DefaultParallaxCatalog,
			SpectraFormat:  DefaultParallaxSpectraFormat,
			IDColumn:       DefaultParallaxIDColumn,
			ParallaxColumn: DefaultParallaxColumn,
			TeffColumn:     DefaultTeffColumn,
			FlagColumn:     DefaultFlagColumn,
			TeffMax:        DefaultTeffMax,
			Prefix:         DefaultParallaxPrefix,
		},
		MergedPrefix: DefaultMergedPrefix,
	}
}

// Validate checks if the PipelineConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *PipelineConfig) Validate() error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"DataDir", c.DataDir},
		{"OutputDir", c.OutputDir},
		{"Cluster.Catalog", c.Cluster.Catalog},
		{"Cluster.SpectraGlob", c.Cluster.SpectraGlob},
		{"Cluster.FileColumn", c.Cluster.FileColumn},
		{"Cluster.Prefix", c.Cluster.Prefix},
		{"Parallax.Catalog", c.Parallax.Catalog},
		{"Parallax.SpectraFormat", c.Parallax.SpectraFormat},
		{"Parallax.IDColumn", c.Parallax.IDColumn},
		{"Parallax.ParallaxColumn", c.Parallax.ParallaxColumn},
		{"Parallax.TeffColumn", c.Parallax.TeffColumn},
		{"Parallax.FlagColumn", c.Parallax.FlagColumn},
		{"Parallax.Prefix", c.Parallax.Prefix},
		{"MergedPrefix", c.MergedPrefix},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required: %w", r.name, ErrInvalidConfig))
		}
	}

	if c.Parallax.SpectraFormat != "" && !strings.Contains(c.Parallax.SpectraFormat, "%") {
		errs = append(errs, fmt.Errorf("Parallax.SpectraFormat %q has no identifier verb: %w", c.Parallax.SpectraFormat, ErrInvalidConfig))
	}

	if c.Parallax.TeffMax <= 0 || math.IsNaN(c.Parallax.TeffMax) {
		errs = append(errs, fmt.Errorf("Parallax.TeffMax must be positive: %w", ErrInvalidConfig))
	}

	for name, d := range c.Cluster.Distances {
		if !(d.DistanceKpc > 0) || math.IsInf(d.DistanceKpc, 0) {
			errs = append(errs, fmt.Errorf("cluster %s distance must be positive and finite: %w", name, ErrInvalidConfig))
		}
	}

	prefixes := map[string]string{}
	for name, p := range map[string]string{
		"Cluster.Prefix":  c.Cluster.Prefix,
		"Parallax.Prefix": c.Parallax.Prefix,
		"MergedPrefix":    c.MergedPrefix,
	} {
		if p == "" {
			continue
		}
		if other, dup := prefixes[p]; dup {
			errs = append(errs, fmt.Errorf("%s and %s share prefix %q: %w", other, name, p, ErrInvalidConfig))
		}
		prefixes[p] = name
	}

	return errors.Join(errs...)
}
