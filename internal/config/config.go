// Package config reads the optional specprep.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/specprep/specprep/pkg/specprep"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the file looked up in the data directory.
const ConfigFileName = "specprep.yaml"

type DistanceConfig struct {
	DistanceKpc float64 `yaml:"distance_kpc"`
	Source      string  `yaml:"source,omitempty"`
}

type ClusterConfig struct {
	Catalog        string                    `yaml:"catalog,omitempty"`
	SpectraGlob    string                    `yaml:"spectra_glob,omitempty"`
	FileColumn     string                    `yaml:"file_column,omitempty"`
	SpectrumPrefix string                    `yaml:"spectrum_prefix,omitempty"`
	CatalogPrefix  string                    `yaml:"catalog_prefix,omitempty"`
	Prefix         string                    `yaml:"prefix,omitempty"`
	Distances      map[string]DistanceConfig `yaml:"distances,omitempty"`
}

type ParallaxConfig struct {
	Catalog        string   `yaml:"catalog,omitempty"`
	SpectraFormat  string   `yaml:"spectra_format,omitempty"`
	IDColumn       string   `yaml:"id_column,omitempty"`
	ParallaxColumn string   `yaml:"parallax_column,omitempty"`
	TeffColumn     string   `yaml:"teff_column,omitempty"`
	FlagColumn     string   `yaml:"flag_column,omitempty"`
	TeffMax        *float64 `yaml:"teff_max,omitempty"`
	Prefix         string   `yaml:"prefix,omitempty"`
}

type ProjectConfig struct {
	DataDir      string         `yaml:"data_dir,omitempty"`
	OutputDir    string         `yaml:"output_dir,omitempty"`
	Clobber      *bool          `yaml:"clobber,omitempty"`
	MergedPrefix string         `yaml:"merged_prefix,omitempty"`
	Cluster      ClusterConfig  `yaml:"cluster"`
	Parallax     ParallaxConfig `yaml:"parallax"`
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project config from path. Unknown keys are rejected.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %v: %w", path, err, specprep.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Apply overlays every value set in c onto cfg. Relative data and output
// directories in the file are taken relative to baseDir, the directory
// holding the file.
func (c *ProjectConfig) Apply(cfg *specprep.PipelineConfig, baseDir string) {
	if c.DataDir != "" {
		cfg.DataDir = relativeTo(baseDir, c.DataDir)
	}
	if c.OutputDir != "" {
		cfg.OutputDir = relativeTo(baseDir, c.OutputDir)
	}
	if c.Clobber != nil {
		cfg.Clobber = *c.Clobber
	}
	setString(&cfg.MergedPrefix, c.MergedPrefix)

	cl := &cfg.Cluster
	setString(&cl.Catalog, c.Cluster.Catalog)
	setString(&cl.SpectraGlob, c.Cluster.SpectraGlob)
	setString(&cl.FileColumn, c.Cluster.FileColumn)
	setString(&cl.SpectrumPrefix, c.Cluster.SpectrumPrefix)
	setString(&cl.CatalogPrefix, c.Cluster.CatalogPrefix)
	setString(&cl.Prefix, c.Cluster.Prefix)
	if len(c.Cluster.Distances) > 0 {
		if cl.Distances == nil {
			cl.Distances = make(map[string]specprep.ClusterDistance, len(c.Cluster.Distances))
		}
		for name, d := range c.Cluster.Distances {
			cl.Distances[name] = specprep.ClusterDistance{DistanceKpc: d.DistanceKpc, Source: d.Source}
		}
	}

	px := &cfg.Parallax
	setString(&px.Catalog, c.Parallax.Catalog)
	setString(&px.SpectraFormat, c.Parallax.SpectraFormat)
	setString(&px.IDColumn, c.Parallax.IDColumn)
	setString(&px.ParallaxColumn, c.Parallax.ParallaxColumn)
	setString(&px.TeffColumn, c.Parallax.TeffColumn)
	setString(&px.FlagColumn, c.Parallax.FlagColumn)
	setString(&px.Prefix, c.Parallax.Prefix)
	if c.Parallax.TeffMax != nil {
		px.TeffMax = *c.Parallax.TeffMax
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func relativeTo(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
