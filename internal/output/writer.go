package output

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/specprep/specprep/internal/checksum"
	"github.com/specprep/specprep/internal/fitsfile"
	"github.com/specprep/specprep/pkg/specprep"
)

var _ specprep.SampleWriter = (*Writer)(nil)

// Writer writes samples below a base directory.
type Writer struct {
	dir    string
	calc   checksum.Calculator
	logger specprep.Logger
}

// NewWriter creates a Writer. Relative prefixes are resolved against dir.
func NewWriter(dir string, calc checksum.Calculator, logger specprep.Logger) *Writer {
	if calc == nil {
		panic("calc cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Writer{dir: dir, calc: calc, logger: logger}
}

// Paths returns the catalog, flux and uncertainty paths for prefix.
func Paths(prefix string) (catalog, flux, uncertainty string) {
	return prefix + specprep.CatalogSuffix,
		prefix + specprep.FluxSuffix,
		prefix + specprep.UncertaintySuffix
}

// Write validates sample and writes its three files. When clobber is false
// and any target already exists, nothing is written and the error wraps
// specprep.ErrFileExists.
func (w *Writer) Write(sample *specprep.Sample, prefix string, clobber bool) (specprep.WriteResult, error) {
	result := specprep.WriteResult{Prefix: prefix}

	if err := sample.Validate(); err != nil {
		return result, fmt.Errorf("refusing to write sample %q: %w", sample.Name, err)
	}

	base := prefix
	if !filepath.IsAbs(base) && w.dir != "" {
		base = filepath.Join(w.dir, base)
	}
	catalogPath, fluxPath, uncPath := Paths(base)
	targets := []string{catalogPath, fluxPath, uncPath}

	if !clobber {
		for _, target := range targets {
			exists, err := fileExists(target)
			if err != nil {
				return result, err
			}
			if exists {
				return result, fmt.Errorf("%s: %w", target, specprep.ErrFileExists)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	writers := []func(io.Writer) error{
		func(out io.Writer) error { return writeCatalog(out, sample.Catalog) },
		func(out io.Writer) error { return WriteMatrix(out, sample.Flux) },
		func(out io.Writer) error { return WriteMatrix(out, sample.FluxUncertainty) },
	}
	for i, target := range targets {
		file, err := w.writeFile(target, writers[i])
		if err != nil {
			return result, err
		}
		w.logger.Verbose("Wrote %s (%d bytes, sha256 %s)", file.Path, file.SizeBytes, file.Checksum)
		result.Files = append(result.Files, file)
	}
	return result, nil
}

// writeFile streams content into a temporary sibling of target and renames
// it into place once complete.
func (w *Writer) writeFile(target string, content func(io.Writer) error) (specprep.WrittenFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return specprep.WrittenFile{}, fmt.Errorf("failed to create temporary file for %s: %w", target, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	sum := w.calc.NewWriter()
	buf := bufio.NewWriter(io.MultiWriter(tmp, sum))
	if err := content(buf); err != nil {
		return specprep.WrittenFile{}, fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := buf.Flush(); err != nil {
		return specprep.WrittenFile{}, fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return specprep.WrittenFile{}, fmt.Errorf("failed to close %s: %w", target, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return specprep.WrittenFile{}, fmt.Errorf("failed to move %s into place: %w", target, err)
	}
	committed = true

	return specprep.WrittenFile{Path: target, SizeBytes: sum.Size(), Checksum: sum.Sum()}, nil
}

func writeCatalog(out io.Writer, cat *specprep.Catalog) error {
	zw, err := fitsfile.NewGzipWriter(out)
	if err != nil {
		return err
	}
	if err := fitsfile.WriteCatalog(zw, cat); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// WriteMatrix writes m as little-endian float64 values in row-major order.
func WriteMatrix(out io.Writer, m *specprep.Matrix) error {
	var word [8]byte
	for _, v := range m.Data {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		if _, err := out.Write(word[:]); err != nil {
			return err
		}
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s: %w", path, err)
}
