package samples

import (
	"fmt"

	"github.com/specprep/specprep/internal/files/filesystem"
	"github.com/specprep/specprep/internal/fitsfile"
	"github.com/specprep/specprep/internal/quality"
	"github.com/specprep/specprep/pkg/specprep"
)

// spectrumStack collects spectra row by row. The first spectrum fixes the
// pixel count for the rest.
type spectrumStack struct {
	width int
	flux  [][]float64
	unc   [][]float64
}

func (s *spectrumStack) add(label string, flux, unc []float64) error {
	if len(s.flux) == 0 {
		s.width = len(flux)
	}
	if len(flux) != s.width || len(unc) != s.width {
		return fmt.Errorf("%s has %d pixels, expected %d: %w", label, len(flux), s.width, specprep.ErrShapeMismatch)
	}
	s.flux = append(s.flux, flux)
	s.unc = append(s.unc, unc)
	return nil
}

// clean turns the stack into matrices and applies quality control.
func (s *spectrumStack) clean() (*specprep.Matrix, *specprep.Matrix, specprep.QCReport, error) {
	flux := specprep.NewMatrix(len(s.flux), s.width)
	unc := specprep.NewMatrix(len(s.unc), s.width)
	for i := range s.flux {
		if err := flux.SetRow(i, s.flux[i]); err != nil {
			return nil, nil, specprep.QCReport{}, err
		}
		if err := unc.SetRow(i, s.unc[i]); err != nil {
			return nil, nil, specprep.QCReport{}, err
		}
	}
	return quality.Clean(flux, unc)
}

func readSpectrum(fsProvider filesystem.FileSystemProvider, path string) ([]float64, []float64, error) {
	data, err := fsProvider.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read spectrum %s: %w", path, err)
	}
	flux, unc, err := fitsfile.ReadSpectrum(data)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum %s: %w", path, err)
	}
	return flux, unc, nil
}

func readCatalog(fsProvider filesystem.FileSystemProvider, logger specprep.Logger, path string) (*specprep.Catalog, error) {
	info, err := fsProvider.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	logger.Verbose("Reading catalog %s (%d bytes)", path, info.Size())

	data, err := fsProvider.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	cat, err := fitsfile.ReadCatalog(data, specprep.CatalogHDU)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	logger.Verbose("Catalog %s: %d rows, %d columns", path, cat.NumRows(), cat.NumCols())
	return cat, nil
}

func requireColumns(cat *specprep.Catalog, source string, names ...string) error {
	for _, name := range names {
		if !cat.HasColumn(name) {
			return fmt.Errorf("catalog %s has no column %q: %w", source, name, specprep.ErrSchemaMismatch)
		}
	}
	return nil
}
