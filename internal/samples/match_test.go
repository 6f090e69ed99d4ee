package samples_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specprep/specprep/internal/samples"
	"github.com/specprep/specprep/pkg/specprep"
)

func TestCatalogFileName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		from, to string
		expected string
	}{
		{"default prefixes", "APOGEE/Clusters/M3/aspcapStar-r5-v603-2M0001.fits", "aspcapStar-r5-v603-", "apStar-r5-", "apStar-r5-2M0001.fits"},
		{"prefix absent", "M3/other.fits", "aspcapStar-r5-v603-", "apStar-r5-", "other.fits"},
		{"empty source prefix", "M3/x.fits", "", "apStar-r5-", "x.fits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, samples.CatalogFileName(tt.path, tt.from, tt.to))
		})
	}
}

func TestMatchCatalogRow(t *testing.T) {
	cat, err := specprep.NewCatalog(&specprep.Column{
		Name:   "FILE",
		Format: "24A",
		Values: strs("apStar-r5-a.fits", "apStar-r5-b.fits   ", "apStar-r5-dup.fits", "apStar-r5-dup.fits"),
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		column string
		path   string
		row    int
		count  int
	}{
		{"exact match", "FILE", "M3/aspcapStar-r5-v603-a.fits", 0, 1},
		{"padding ignored", "FILE", "M3/aspcapStar-r5-v603-b.fits", 1, 1},
		{"no match", "FILE", "M3/aspcapStar-r5-v603-zzz.fits", -1, 0},
		{"duplicate match", "FILE", "M3/aspcapStar-r5-v603-dup.fits", 2, 2},
		{"missing column", "NOPE", "M3/aspcapStar-r5-v603-a.fits", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := samples.MatchCatalogRow(cat, tt.column, tt.path, "aspcapStar-r5-v603-", "apStar-r5-")
			require.Equal(t, tt.row, m.Row)
			require.Equal(t, tt.count, m.Count)
			require.Equal(t, tt.count == 1, m.Unique())
		})
	}
}

func TestMatchCatalogRow_ReportsSearchedName(t *testing.T) {
	cat, err := specprep.NewCatalog(&specprep.Column{Name: "FILE", Format: "8A", Values: strs("x")})
	require.NoError(t, err)

	m := samples.MatchCatalogRow(cat, "FILE", "M3/aspcapStar-r5-v603-a.fits", "aspcapStar-r5-v603-", "apStar-r5-")
	require.Equal(t, "apStar-r5-a.fits", m.Name)
	require.False(t, m.Unique())
}

func TestClusterName(t *testing.T) {
	require.Equal(t, "M67", samples.ClusterName("/data/APOGEE/Clusters/M67/aspcapStar-r5-v603-x.fits"))
	require.Equal(t, "M3", samples.ClusterName("APOGEE/Clusters/M3/x.fits"))
}

func TestSpectrumPath(t *testing.T) {
	require.Equal(t, "APOGEE/aspCap/HIP1234.fits", samples.SpectrumPath("APOGEE/aspCap/HIP%v.fits", "1234"))
}
