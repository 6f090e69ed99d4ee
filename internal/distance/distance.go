// Package distance computes distance moduli and holds the tabulated cluster
// distances used by the cluster sample.
package distance

import (
	"math"
	"sort"

	"github.com/specprep/specprep/pkg/specprep"
)

// ClusterModulus returns 5*log10(d) - 5 for a tabulated cluster distance.
//
// The tabulated distances are in kiloparsecs and are used as-is, without the
// kpc to pc conversion that ParallaxModulus performs. Outputs produced by
// earlier runs depend on this exact formula.
func ClusterModulus(distanceKpc float64) float64 {
	return 5*math.Log10(distanceKpc) - 5
}

// ParallaxModulus returns 5*log10(1000/plx) - 5 for a parallax in
// milliarcseconds. Non-positive parallaxes yield NaN or +Inf.
func ParallaxModulus(parallaxMas float64) float64 {
	return 5*math.Log10(1000/parallaxMas) - 5
}

// Cluster is one entry of the cluster distance table.
type Cluster struct {
	Name        string
	DistanceKpc float64
	// Source is the literature reference for the distance. It is carried
	// for provenance only.
	Source string
}

// Modulus returns the cluster's distance modulus.
func (c Cluster) Modulus() float64 {
	return ClusterModulus(c.DistanceKpc)
}

// ClusterTable is an immutable cluster name to distance mapping.
// The zero value is an empty table.
type ClusterTable struct {
	clusters map[string]Cluster
}

var defaultClusters = []Cluster{
	{Name: "M67", DistanceKpc: 0.908, Source: "Kharchenko et al. (2005)"},
	{Name: "M2", DistanceKpc: 11.5, Source: "Harris"},
	{Name: "M3", DistanceKpc: 10.2, Source: "Harris"},
	{Name: "M13", DistanceKpc: 7.1, Source: "Harris"},
	{Name: "M15", DistanceKpc: 10.4, Source: "Harris"},
	{Name: "M53", DistanceKpc: 17.9, Source: "Harris"},
	{Name: "M71", DistanceKpc: 4.0, Source: "Harris"},
	{Name: "M92", DistanceKpc: 8.3, Source: "Harris"},
}

// DefaultClusterTable returns the built-in APOGEE cluster distances.
func DefaultClusterTable() ClusterTable {
	return NewClusterTable(nil)
}

// NewClusterTable builds a table from the built-in distances, with overrides
// replacing or extending them by name.
func NewClusterTable(overrides map[string]specprep.ClusterDistance) ClusterTable {
	clusters := make(map[string]Cluster, len(defaultClusters)+len(overrides))
	for _, c := range defaultClusters {
		clusters[c.Name] = c
	}
	for name, d := range overrides {
		clusters[name] = Cluster{Name: name, DistanceKpc: d.DistanceKpc, Source: d.Source}
	}
	return ClusterTable{clusters: clusters}
}

// Lookup returns the named cluster.
func (t ClusterTable) Lookup(name string) (Cluster, bool) {
	c, ok := t.clusters[name]
	return c, ok
}

// Names returns the cluster names in sorted order.
func (t ClusterTable) Names() []string {
	names := make([]string, 0, len(t.clusters))
	for n := range t.clusters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of clusters in the table.
func (t ClusterTable) Len() int { return len(t.clusters) }
