package samples_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specprep/specprep/internal/fitsfile"
	"github.com/specprep/specprep/pkg/specprep"
)

func spectrumFile(t *testing.T, flux, unc []float64) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fitsfile.WriteSpectrum(&buf, flux, unc))
	return buf.Bytes()
}

func catalogFile(t *testing.T, gzipped bool, cols ...*specprep.Column) []byte {
	t.Helper()
	cat, err := specprep.NewCatalog(cols...)
	require.NoError(t, err)

	var raw bytes.Buffer
	require.NoError(t, fitsfile.WriteCatalog(&raw, cat))
	if !gzipped {
		return raw.Bytes()
	}

	var buf bytes.Buffer
	zw, err := fitsfile.NewGzipWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func strs(values ...string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func floats(values ...float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func ints(values ...int32) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
