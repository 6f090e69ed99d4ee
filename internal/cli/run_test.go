package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specprep/specprep/internal/config"
	"github.com/specprep/specprep/internal/fitsfile"
	"github.com/specprep/specprep/pkg/specprep"
)

func resetRunFlags() {
	runFlags = runOptions{}
}

func noEnv(string) string { return "" }

func envMap(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolvePipelineConfig_Defaults(t *testing.T) {
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, err := resolvePipelineConfig(runOptions{}, noEnv)
	require.NoError(t, err)

	want := specprep.DefaultPipelineConfig()
	require.Equal(t, want, cfg)
}

func TestResolvePipelineConfig_Precedence(t *testing.T) {
	dataDir := t.TempDir()
	yaml := "data_dir: from-yaml\noutput_dir: yaml-out\nclobber: true\nmerged_prefix: Both\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, config.ConfigFileName), []byte(yaml), 0o644))

	t.Run("yaml applies below env", func(t *testing.T) {
		cfg, err := resolvePipelineConfig(runOptions{dataDir: dataDir}, noEnv)
		require.NoError(t, err)
		require.Equal(t, dataDir, cfg.DataDir, "flag beats yaml")
		require.Equal(t, filepath.Join(dataDir, "yaml-out"), cfg.OutputDir)
		require.Equal(t, "Both", cfg.MergedPrefix)
		require.True(t, cfg.Clobber)
	})

	t.Run("env beats yaml", func(t *testing.T) {
		cfg, err := resolvePipelineConfig(runOptions{}, envMap(map[string]string{
			EnvDataDir:   dataDir,
			EnvOutputDir: "/env/out",
		}))
		require.NoError(t, err)
		require.Equal(t, dataDir, cfg.DataDir)
		require.Equal(t, "/env/out", cfg.OutputDir)
		require.Equal(t, "Both", cfg.MergedPrefix)
	})

	t.Run("flag beats env", func(t *testing.T) {
		cfg, err := resolvePipelineConfig(runOptions{dataDir: dataDir, outputDir: "/flag/out", noClobber: true, verbose: true},
			envMap(map[string]string{EnvOutputDir: "/env/out"}))
		require.NoError(t, err)
		require.Equal(t, "/flag/out", cfg.OutputDir)
		require.False(t, cfg.Clobber)
		require.True(t, cfg.Verbose)
	})
}

func TestResolvePipelineConfig_ExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parallax:\n  teff_max: 5000\n"), 0o644))

	cfg, err := resolvePipelineConfig(runOptions{configPath: path}, noEnv)
	require.NoError(t, err)
	require.Equal(t, 5000.0, cfg.Parallax.TeffMax)
}

func TestResolvePipelineConfig_ExplicitConfigMissing(t *testing.T) {
	_, err := resolvePipelineConfig(runOptions{configPath: filepath.Join(t.TempDir(), "nope.yaml")}, noEnv)
	require.ErrorIs(t, err, specprep.ErrInvalidConfig)
	require.Equal(t, specprep.ExitConfigError, specprep.ExitCodeForError(err))
}

func TestResolvePipelineConfig_InvalidValues(t *testing.T) {
	dataDir := t.TempDir()
	yaml := "cluster:\n  prefix: Same\nparallax:\n  prefix: Same\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, config.ConfigFileName), []byte(yaml), 0o644))

	_, err := resolvePipelineConfig(runOptions{dataDir: dataDir}, noEnv)
	require.ErrorIs(t, err, specprep.ErrInvalidConfig)
}

func writeFixture(t *testing.T, path string, write func(*bytes.Buffer) error) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, write(&buf))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	hip, err := specprep.NewCatalog(
		&specprep.Column{Name: "APOGEE_ID", Format: "8A", Values: []interface{}{"2M-hip1", "2M-hip2"}},
		&specprep.Column{Name: "HIP", Format: "J", Values: []interface{}{int32(1), int32(2)}},
		&specprep.Column{Name: "Plx", Format: "D", Values: []interface{}{10.0, 20.0}},
		&specprep.Column{Name: "TEFF", Format: "D", Values: []interface{}{4800.0, 9000.0}},
		&specprep.Column{Name: "ASPCAPFLAG", Format: "J", Values: []interface{}{int32(0), int32(0)}},
	)
	require.NoError(t, err)
	writeFixture(t, filepath.Join(dir, specprep.DefaultParallaxCatalog), func(b *bytes.Buffer) error {
		zw, err := fitsfile.NewGzipWriter(b)
		if err != nil {
			return err
		}
		if err := fitsfile.WriteCatalog(zw, hip); err != nil {
			return err
		}
		return zw.Close()
	})
	writeFixture(t, filepath.Join(dir, "APOGEE", "aspCap", "HIP1.fits"), func(b *bytes.Buffer) error {
		return fitsfile.WriteSpectrum(b, []float64{1, 0, 3}, []float64{0.1, 0.1, 0.1})
	})

	clusters, err := specprep.NewCatalog(
		&specprep.Column{Name: "APOGEE_ID", Format: "8A", Values: []interface{}{"2M-cl1"}},
		&specprep.Column{Name: "FILE", Format: "20A", Values: []interface{}{"apStar-r5-cl1.fits"}},
		&specprep.Column{Name: "TEFF", Format: "D", Values: []interface{}{4500.0}},
	)
	require.NoError(t, err)
	writeFixture(t, filepath.Join(dir, specprep.DefaultClusterCatalog), func(b *bytes.Buffer) error {
		return fitsfile.WriteCatalog(b, clusters)
	})
	writeFixture(t, filepath.Join(dir, "APOGEE", "Clusters", "M67", "aspcapStar-r5-v603-cl1.fits"), func(b *bytes.Buffer) error {
		return fitsfile.WriteSpectrum(b, []float64{2, -1, 4}, []float64{0.2, 0.2, 0.2})
	})
	return dir
}

func TestRootCmd_EndToEnd(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvOutputDir, "")
	resetRunFlags()
	defer resetRunFlags()

	dataDir := writeDataDir(t)
	outDir := filepath.Join(t.TempDir(), "out")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"--data-dir", dataDir, "--output-dir", outDir, "--no-clobber"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	for _, prefix := range []string{specprep.DefaultParallaxPrefix, specprep.DefaultClusterPrefix, specprep.DefaultMergedPrefix} {
		for _, suffix := range []string{specprep.CatalogSuffix, specprep.FluxSuffix, specprep.UncertaintySuffix} {
			_, err := os.Stat(filepath.Join(outDir, prefix+suffix))
			require.NoError(t, err, prefix+suffix)
		}
	}

	flux, err := os.ReadFile(filepath.Join(outDir, specprep.DefaultMergedPrefix+specprep.FluxSuffix))
	require.NoError(t, err)
	// Both samples drop the non-positive middle pixel.
	require.Len(t, flux, 2*2*8)

	raw, err := os.ReadFile(filepath.Join(outDir, specprep.DefaultMergedPrefix+specprep.CatalogSuffix))
	require.NoError(t, err)
	merged, err := fitsfile.ReadCatalog(raw, specprep.CatalogHDU)
	require.NoError(t, err)
	require.Equal(t, []string{"APOGEE_ID", "TEFF", "mu"}, merged.ColumnNames())
	first, err := merged.String("APOGEE_ID", 0)
	require.NoError(t, err)
	require.Equal(t, "2M-hip1", first)

	require.Contains(t, stdout.String(), specprep.DefaultMergedPrefix)

	// A second run refuses to replace the outputs.
	resetRunFlags()
	rootCmd.SetArgs([]string{"run", "--data-dir", dataDir, "--output-dir", outDir, "--no-clobber"})
	err = rootCmd.Execute()
	require.ErrorIs(t, err, specprep.ErrFileExists)
	require.Equal(t, specprep.ExitFileExists, specprep.ExitCodeForError(err))
}

func TestRootCmd_MissingInputs(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvOutputDir, "")
	resetRunFlags()
	defer resetRunFlags()

	rootCmd.SetArgs([]string{"--data-dir", t.TempDir(), "--output-dir", t.TempDir()})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	require.Equal(t, specprep.ExitInputError, specprep.ExitCodeForError(err))
}

func TestRootCmd_RejectsArguments(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{"extra"})
	require.Error(t, err)
	require.Equal(t, specprep.ExitUsageError, specprep.ExitCodeForError(err))
}
