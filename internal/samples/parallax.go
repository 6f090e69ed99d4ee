package samples

import (
	"context"
	"fmt"

	"github.com/specprep/specprep/internal/distance"
	"github.com/specprep/specprep/internal/files/filesystem"
	"github.com/specprep/specprep/pkg/specprep"
)

var _ specprep.SampleLoader = (*ParallaxLoader)(nil)

// ParallaxLoader builds the parallax sample from a master catalog and one
// spectrum file per catalog identifier.
type ParallaxLoader struct {
	fsProvider filesystem.FileSystemProvider
	logger     specprep.Logger
	dataDir    string
	config     specprep.ParallaxSampleConfig
}

// NewParallaxLoader creates a ParallaxLoader. Relative paths in config are
// resolved against dataDir.
func NewParallaxLoader(
	fsProvider filesystem.FileSystemProvider,
	logger specprep.Logger,
	dataDir string,
	config specprep.ParallaxSampleConfig,
) *ParallaxLoader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ParallaxLoader{
		fsProvider: fsProvider,
		logger:     logger,
		dataDir:    dataDir,
		config:     config,
	}
}

// Load filters the master catalog to cool stars with clean pipeline flags,
// reads their spectra, cleans the matrices and adds the parallax distance
// modulus.
func (l *ParallaxLoader) Load(ctx context.Context) (*specprep.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalogPath := resolvePath(l.dataDir, l.config.Catalog)
	master, err := readCatalog(l.fsProvider, l.logger, catalogPath)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(master, catalogPath,
		l.config.IDColumn, l.config.ParallaxColumn, l.config.TeffColumn, l.config.FlagColumn); err != nil {
		return nil, err
	}

	stars, _, err := master.Filter(l.qualityCut(master))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", catalogPath, err)
	}
	if stars.NumRows() == 0 {
		return nil, fmt.Errorf("no stars in %s pass the quality cuts: %w", catalogPath, specprep.ErrNoSpectra)
	}
	l.logger.Verbose("%d of %d catalog stars pass the quality cuts", stars.NumRows(), master.NumRows())

	n := stars.NumRows()
	stack := &spectrumStack{}
	for i := 0; i < n; i++ {
		id, err := stars.String(l.config.IDColumn, i)
		if err != nil {
			return nil, err
		}
		l.logger.Info("%d/%d: %s%s", i+1, n, l.config.IDColumn, id)

		path := resolvePath(l.dataDir, SpectrumPath(l.config.SpectraFormat, id))
		flux, unc, err := readSpectrum(l.fsProvider, path)
		if err != nil {
			return nil, err
		}
		if err := stack.add(path, flux, unc); err != nil {
			return nil, err
		}
	}

	fluxes, uncertainties, report, err := stack.clean()
	if err != nil {
		return nil, err
	}

	mu := make([]float64, n)
	for i := range mu {
		plx, err := stars.Float(l.config.ParallaxColumn, i)
		if err != nil {
			return nil, err
		}
		mu[i] = distance.ParallaxModulus(plx)
	}
	if err := stars.AddFloatColumn(specprep.MuColumn, mu); err != nil {
		return nil, err
	}

	return &specprep.Sample{
		Name:            "parallax",
		Catalog:         stars,
		Flux:            fluxes,
		FluxUncertainty: uncertainties,
		QC:              report,
	}, nil
}

// qualityCut keeps rows with TEFF > 0, TEFF < TeffMax and a zero flag.
// NaN temperatures fail both comparisons and are rejected.
func (l *ParallaxLoader) qualityCut(cat *specprep.Catalog) func(row int) (bool, error) {
	return func(row int) (bool, error) {
		teff, err := cat.Float(l.config.TeffColumn, row)
		if err != nil {
			return false, err
		}
		flag, err := cat.Float(l.config.FlagColumn, row)
		if err != nil {
			return false, err
		}
		return teff > 0 && teff < l.config.TeffMax && flag == 0, nil
	}
}

// SpectrumPath renders the spectrum path for a catalog identifier.
func SpectrumPath(format, id string) string {
	return fmt.Sprintf(format, id)
}
