package samples

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specprep/specprep/internal/distance"
	"github.com/specprep/specprep/internal/files/filesystem"
	"github.com/specprep/specprep/pkg/specprep"
)

var _ specprep.SampleLoader = (*ClusterLoader)(nil)

// ClusterLoader builds the cluster sample from one spectrum file per star,
// grouped in one directory per cluster.
type ClusterLoader struct {
	fsProvider filesystem.FileSystemProvider
	logger     specprep.Logger
	clusters   distance.ClusterTable
	dataDir    string
	config     specprep.ClusterSampleConfig
}

// NewClusterLoader creates a ClusterLoader. Relative paths in config are
// resolved against dataDir.
func NewClusterLoader(
	fsProvider filesystem.FileSystemProvider,
	logger specprep.Logger,
	clusters distance.ClusterTable,
	dataDir string,
	config specprep.ClusterSampleConfig,
) *ClusterLoader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ClusterLoader{
		fsProvider: fsProvider,
		logger:     logger,
		clusters:   clusters,
		dataDir:    dataDir,
		config:     config,
	}
}

// Load reads every spectrum matched by the configured glob, cleans the
// stacked matrices and pairs each spectrum with its master catalog row.
func (l *ClusterLoader) Load(ctx context.Context) (*specprep.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := resolvePath(l.dataDir, l.config.SpectraGlob)
	paths, err := l.fsProvider.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid spectra pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no spectra match %q: %w", pattern, specprep.ErrNoSpectra)
	}
	sort.Strings(paths)
	l.logger.Verbose("Found %d cluster spectra, %d tabulated cluster distances", len(paths), l.clusters.Len())

	stack := &spectrumStack{}
	for i, path := range paths {
		l.logger.Info("%d/%d: %s", i+1, len(paths), path)
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

	catalogPath := resolvePath(l.dataDir, l.config.Catalog)
	master, err := readCatalog(l.fsProvider, l.logger, catalogPath)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(master, catalogPath, l.config.FileColumn); err != nil {
		return nil, err
	}

	rows := make([]int, len(paths))
	mu := make([]float64, len(paths))
	for i, path := range paths {
		match := MatchCatalogRow(master, l.config.FileColumn, path, l.config.SpectrumPrefix, l.config.CatalogPrefix)
		if !match.Unique() {
			return nil, fmt.Errorf("spectrum %s: %d catalog rows have %s=%q, expected 1: %w",
				path, match.Count, l.config.FileColumn, match.Name, specprep.ErrCatalogMatch)
		}
		rows[i] = match.Row

		clusterName := ClusterName(path)
		cluster, ok := l.clusters.Lookup(clusterName)
		if !ok {
			return nil, fmt.Errorf("spectrum %s: cluster %q not in [%s]: %w",
				path, clusterName, strings.Join(l.clusters.Names(), " "), specprep.ErrUnknownCluster)
		}
		mu[i] = cluster.Modulus()
	}

	catalog, err := master.Select(rows)
	if err != nil {
		return nil, err
	}
	if err := catalog.AddFloatColumn(specprep.MuColumn, mu); err != nil {
		return nil, err
	}

	return &specprep.Sample{
		Name:            "cluster",
		Catalog:         catalog,
		Flux:            fluxes,
		FluxUncertainty: uncertainties,
		QC:              report,
	}, nil
}

// ClusterName returns the cluster a spectrum belongs to: the name of the
// directory holding it.
func ClusterName(spectrumPath string) string {
	return filepath.Base(filepath.Dir(spectrumPath))
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}
