package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/specprep/specprep/internal/checksum"
	"github.com/specprep/specprep/internal/config"
	"github.com/specprep/specprep/internal/distance"
	"github.com/specprep/specprep/internal/files/filesystem"
	"github.com/specprep/specprep/internal/logging"
	"github.com/specprep/specprep/internal/output"
	"github.com/specprep/specprep/internal/samples"
	"github.com/specprep/specprep/internal/services"
	"github.com/specprep/specprep/internal/tui"
	"github.com/specprep/specprep/pkg/specprep"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build and write the parallax, cluster and merged samples",
	Long: `Build and write the parallax, cluster and merged samples.

Stages run in order:
  1. parallax sample -> APOGEE-Hipparcos
  2. cluster sample  -> APOGEE-Clusters
  3. merged sample   -> APOGEE-Clusters+Hipparcos (common columns only)`,
	Args:         cobra.NoArgs,
	RunE:         runPipeline,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := resolvePipelineConfig(runFlags, os.Getenv)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	pipeline := newPipeline(cfg, filesystem.NewOSFileSystem(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Error("Interrupted, stopping after the current stage")
		}
		return err
	}

	return tui.RenderSummary(cmd.OutOrStdout(), report, tui.DetectMode())
}

// newPipeline wires the loaders and writer for cfg.
func newPipeline(cfg specprep.PipelineConfig, fsProvider filesystem.FileSystemProvider, logger specprep.Logger) *services.Pipeline {
	clusters := distance.NewClusterTable(cfg.Cluster.Distances)
	return services.NewPipeline(
		samples.NewParallaxLoader(fsProvider, logger, cfg.DataDir, cfg.Parallax),
		samples.NewClusterLoader(fsProvider, logger, clusters, cfg.DataDir, cfg.Cluster),
		output.NewWriter(cfg.OutputDir, checksum.New(), logger),
		logger,
		cfg,
	)
}

// resolvePipelineConfig layers flags over environment over specprep.yaml
// over built-in defaults.
func resolvePipelineConfig(opts runOptions, getenv func(string) string) (specprep.PipelineConfig, error) {
	cfg := specprep.DefaultPipelineConfig()

	envDataDir := getenv(EnvDataDir)
	envOutputDir := getenv(EnvOutputDir)
	searchDir := firstNonEmpty(opts.dataDir, envDataDir, ".")

	project, baseDir, err := loadProjectConfig(opts.configPath, searchDir)
	if err != nil {
		return cfg, err
	}
	if project != nil {
		project.Apply(&cfg, baseDir)
	}

	cfg.DataDir = firstNonEmpty(opts.dataDir, envDataDir, cfg.DataDir)
	cfg.OutputDir = firstNonEmpty(opts.outputDir, envOutputDir, cfg.OutputDir)
	if opts.noClobber {
		cfg.Clobber = false
	}
	cfg.Verbose = opts.verbose

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadProjectConfig returns nil when no explicit path is given and the data
// directory has no specprep.yaml. An explicit path must exist.
func loadProjectConfig(explicitPath, searchDir string) (*config.ProjectConfig, string, error) {
	if explicitPath != "" {
		project, err := config.LoadFile(explicitPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, "", fmt.Errorf("config file %s not found: %w", explicitPath, specprep.ErrInvalidConfig)
			}
			return nil, "", fmt.Errorf("failed to load %s: %w", explicitPath, err)
		}
		return project, filepath.Dir(explicitPath), nil
	}

	project, err := config.Load(searchDir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return project, searchDir, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
