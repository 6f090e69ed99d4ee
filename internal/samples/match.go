package samples

import (
	"path/filepath"
	"strings"

	"github.com/specprep/specprep/pkg/specprep"
)

// CatalogFileName maps a spectrum path to the file name recorded in the
// master catalog by replacing spectrumPrefix with catalogPrefix in its base name.
func CatalogFileName(spectrumPath, spectrumPrefix, catalogPrefix string) string {
	base := filepath.Base(spectrumPath)
	if spectrumPrefix == "" {
		return base
	}
	return strings.ReplaceAll(base, spectrumPrefix, catalogPrefix)
}

// CatalogMatch is the outcome of looking a spectrum up in the master catalog.
type CatalogMatch struct {
	// Name is the file name searched for.
	Name string
	// Row is the first matching row, or -1.
	Row int
	// Count is the number of matching rows.
	Count int
}

// Unique reports whether exactly one row matched.
func (m CatalogMatch) Unique() bool { return m.Count == 1 }

// MatchCatalogRow finds the catalog rows whose column value equals the
// catalog file name of spectrumPath. A missing column matches nothing.
// Deciding whether a failed match is fatal is left to the caller.
func MatchCatalogRow(cat *specprep.Catalog, column, spectrumPath, spectrumPrefix, catalogPrefix string) CatalogMatch {
	m := CatalogMatch{Name: CatalogFileName(spectrumPath, spectrumPrefix, catalogPrefix), Row: -1}
	if !cat.HasColumn(column) {
		return m
	}
	for r := 0; r < cat.NumRows(); r++ {
		v, err := cat.String(column, r)
		if err != nil || v != m.Name {
			continue
		}
		if m.Count == 0 {
			m.Row = r
		}
		m.Count++
	}
	return m
}
