package fitsfile

import (
	"fmt"
	"io"
	"reflect"

	"github.com/astrogo/fitsio"

	"github.com/specprep/specprep/pkg/specprep"
)

// CatalogExtension is the EXTNAME given to written catalog tables.
const CatalogExtension = "CATALOG"

// WriteCatalog writes an empty primary HDU followed by the catalog as a
// binary table.
func WriteCatalog(w io.Writer, cat *specprep.Catalog) error {
	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("failed to create FITS stream: %w", err)
	}

	if err := writePrimary(f); err != nil {
		f.Close()
		return err
	}

	cols := make([]fitsio.Column, cat.NumCols())
	for i, col := range cat.Columns() {
		cols[i] = fitsio.Column{Name: col.Name, Format: col.Format}
	}

	tbl, err := fitsio.NewTable(CatalogExtension, cols, fitsio.BINARY_TBL)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create table: %w", err)
	}
	defer tbl.Close()

	widths, err := stringWidths(cat)
	if err != nil {
		f.Close()
		return err
	}

	args := make([]interface{}, cat.NumCols())
	for r := 0; r < cat.NumRows(); r++ {
		for i, col := range cat.Columns() {
			if widths[i] < 0 {
				args[i] = pointerTo(col.Values[r])
				continue
			}
			cell, err := stringCell(col.Values[r], widths[i])
			if err != nil {
				f.Close()
				return fmt.Errorf("column %q row %d: %w", col.Name, r, err)
			}
			args[i] = cell
		}
		if err := tbl.Write(args...); err != nil {
			f.Close()
			return fmt.Errorf("failed to write catalog row %d: %w", r, err)
		}
	}

	if err := f.Write(tbl); err != nil {
		f.Close()
		return fmt.Errorf("failed to write table HDU: %w", err)
	}
	return f.Close()
}

// WriteSpectrum writes an empty primary HDU followed by float64 flux and
// uncertainty image extensions, the layout ReadSpectrum expects.
func WriteSpectrum(w io.Writer, flux, uncertainty []float64) error {
	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("failed to create FITS stream: %w", err)
	}

	if err := writePrimary(f); err != nil {
		f.Close()
		return err
	}

	for _, data := range [][]float64{flux, uncertainty} {
		pixels := append([]float64(nil), data...)
		img := fitsio.NewImage(-64, []int{len(pixels)})
		if err := img.Write(&pixels); err != nil {
			img.Close()
			f.Close()
			return fmt.Errorf("failed to encode image: %w", err)
		}
		if err := f.Write(img); err != nil {
			img.Close()
			f.Close()
			return fmt.Errorf("failed to write image HDU: %w", err)
		}
		img.Close()
	}
	return f.Close()
}

func writePrimary(f *fitsio.File) error {
	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return fmt.Errorf("failed to create primary HDU: %w", err)
	}
	defer phdu.Close()
	if err := f.Write(phdu); err != nil {
		return fmt.Errorf("failed to write primary HDU: %w", err)
	}
	return nil
}

// stringWidths returns the cell width of every character column, and -1 for
// the other columns.
func stringWidths(cat *specprep.Catalog) ([]int, error) {
	widths := make([]int, cat.NumCols())
	for i, col := range cat.Columns() {
		repeat, code, err := specprep.ParseFormat(col.Format)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		widths[i] = -1
		if code == 'A' {
			widths[i] = repeat
		}
	}
	return widths, nil
}

// stringCell encodes v as a NUL-padded fixed-width character cell. fitsio
// prefixes string values with a NUL byte and loses their last character, so
// the cell is handed over as a byte array, which it copies verbatim.
func stringCell(v interface{}, width int) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("character column holds %T: %w", v, specprep.ErrSchemaMismatch)
	}
	if len(s) > width {
		return nil, fmt.Errorf("value %q is longer than %d characters: %w", s, width, specprep.ErrSchemaMismatch)
	}
	cell := reflect.New(reflect.ArrayOf(width, reflect.TypeOf(byte(0))))
	reflect.Copy(cell.Elem(), reflect.ValueOf([]byte(s)))
	return cell.Interface(), nil
}

// pointerTo boxes v behind a freshly allocated pointer of its own type; the
// table encoder reads row values through pointers.
func pointerTo(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	return ptr.Interface()
}
