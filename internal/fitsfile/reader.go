package fitsfile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/specprep/specprep/pkg/specprep"
)

// Open parses data as FITS, inflating gzip input first.
func Open(data []byte) (*fitsio.File, error) {
	raw, err := Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, specprep.ErrInvalidFITS)
	}
	f, err := fitsio.Open(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse FITS: %v: %w", err, specprep.ErrInvalidFITS)
	}
	return f, nil
}

func hdu(f *fitsio.File, index int) (fitsio.HDU, error) {
	hdus := f.HDUs()
	if index < 0 || index >= len(hdus) {
		return nil, fmt.Errorf("HDU %d requested, file has %d: %w", index, len(hdus), specprep.ErrInvalidFITS)
	}
	return hdus[index], nil
}

// ReadSpectrum returns the first row of the flux (HDU 1) and uncertainty
// (HDU 2) images. Both must have the same length.
func ReadSpectrum(data []byte) (flux, uncertainty []float64, err error) {
	f, err := Open(data)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	flux, err = readImageRow(f, specprep.FluxHDU)
	if err != nil {
		return nil, nil, fmt.Errorf("flux: %w", err)
	}
	uncertainty, err = readImageRow(f, specprep.UncertaintyHDU)
	if err != nil {
		return nil, nil, fmt.Errorf("uncertainty: %w", err)
	}

	if len(flux) != len(uncertainty) {
		return nil, nil, fmt.Errorf("flux has %d pixels, uncertainty has %d: %w", len(flux), len(uncertainty), specprep.ErrShapeMismatch)
	}
	return flux, uncertainty, nil
}

// readImageRow returns the first NAXIS1 values of an image HDU. Higher
// dimensional images (e.g. combined plus individual visits) contribute their
// first row only.
func readImageRow(f *fitsio.File, index int) ([]float64, error) {
	h, err := hdu(f, index)
	if err != nil {
		return nil, err
	}
	img, ok := h.(fitsio.Image)
	if !ok {
		return nil, fmt.Errorf("HDU %d is not an image: %w", index, specprep.ErrInvalidFITS)
	}

	axes := img.Header().Axes()
	if len(axes) == 0 {
		return []float64{}, nil
	}

	values, err := readImage(img)
	if err != nil {
		return nil, fmt.Errorf("HDU %d: %w", index, err)
	}
	width := axes[0]
	if width > len(values) {
		return nil, fmt.Errorf("HDU %d holds %d values, NAXIS1=%d: %w", index, len(values), width, specprep.ErrInvalidFITS)
	}
	return values[:width], nil
}

// readImage decodes every pixel of an image as float64, applying
// BSCALE/BZERO when present.
func readImage(img fitsio.Image) ([]float64, error) {
	hdr := img.Header()
	n := 1
	for _, a := range hdr.Axes() {
		n *= a
	}

	var out []float64
	switch hdr.Bitpix() {
	case 8:
		raw := make([]uint8, n)
		if err := img.Read(&raw); err != nil {
			return nil, readErr(err)
		}
		out = widen(raw)
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil {
			return nil, readErr(err)
		}
		out = widen(raw)
	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil {
			return nil, readErr(err)
		}
		out = widen(raw)
	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return nil, readErr(err)
		}
		out = widen(raw)
	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil {
			return nil, readErr(err)
		}
		out = widen(raw)
	case -64:
		out = make([]float64, n)
		if err := img.Read(&out); err != nil {
			return nil, readErr(err)
		}
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d: %w", hdr.Bitpix(), specprep.ErrInvalidFITS)
	}

	scale := cardFloat(hdr, "BSCALE", 1)
	zero := cardFloat(hdr, "BZERO", 0)
	if scale != 1 || zero != 0 {
		for i, v := range out {
			out[i] = v*scale + zero
		}
	}
	return out, nil
}

func readErr(err error) error {
	return fmt.Errorf("failed to read image data: %v: %w", err, specprep.ErrInvalidFITS)
}

type pixel interface {
	~uint8 | ~int16 | ~int32 | ~int64 | ~float32
}

func widen[T pixel](raw []T) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out
}

func cardFloat(hdr *fitsio.Header, name string, def float64) float64 {
	card := hdr.Get(name)
	if card == nil {
		return def
	}
	switch v := card.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	}
	return def
}

// ReadCatalog reads the binary table in HDU index into a catalog. Column
// values keep the Go types produced by the FITS decoder; trailing blank and
// NUL padding is stripped from character cells.
func ReadCatalog(data []byte, index int) (*specprep.Catalog, error) {
	f, err := Open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := hdu(f, index)
	if err != nil {
		return nil, err
	}
	tbl, ok := h.(*fitsio.Table)
	if !ok {
		return nil, fmt.Errorf("HDU %d is not a table: %w", index, specprep.ErrInvalidFITS)
	}

	cols := tbl.Cols()
	nrows := tbl.NumRows()
	values := make([][]interface{}, len(cols))
	for i := range values {
		values[i] = make([]interface{}, 0, nrows)
	}

	rows, err := tbl.Read(0, nrows)
	if err != nil {
		return nil, fmt.Errorf("failed to read table rows: %v: %w", err, specprep.ErrInvalidFITS)
	}
	defer rows.Close()

	for rows.Next() {
		row := make(map[string]interface{}, len(cols))
		if err := rows.Scan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan table row: %v: %w", err, specprep.ErrInvalidFITS)
		}
		for i, col := range cols {
			v := row[col.Name]
			if str, ok := v.(string); ok {
				v = strings.TrimRight(str, " \x00")
			}
			values[i] = append(values[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table rows: %v: %w", err, specprep.ErrInvalidFITS)
	}

	columns := make([]*specprep.Column, len(cols))
	for i, col := range cols {
		columns[i] = &specprep.Column{Name: col.Name, Format: col.Format, Values: values[i]}
	}
	return specprep.NewCatalog(columns...)
}
