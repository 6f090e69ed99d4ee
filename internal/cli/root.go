package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Environment variables providing defaults for the matching flags.
const (
	EnvDataDir   = "SPECPREP_DATA_DIR"
	EnvOutputDir = "SPECPREP_OUTPUT_DIR"
)

type runOptions struct {
	verbose    bool
	configPath string
	dataDir    string
	outputDir  string
	noClobber  bool
}

var runFlags runOptions

var rootCmd = &cobra.Command{
	Use:   "specprep",
	Short: "Prepare APOGEE cluster and Hipparcos spectra for modelling",
	Long: `specprep reads APOGEE spectra and their master catalogs, cleans unphysical
pixels, attaches a distance modulus (mu) to every star and writes three
samples: APOGEE-Hipparcos, APOGEE-Clusters and APOGEE-Clusters+Hipparcos.

Each sample is a gzip-compressed FITS catalog (PREFIX.fits.gz) plus raw
little-endian float64 flux and uncertainty matrices (PREFIX-flux.memmap,
PREFIX-flux-uncertainties.memmap).

Running specprep without a subcommand is the same as "specprep run".

Configuration precedence: flags > environment (SPECPREP_DATA_DIR,
SPECPREP_OUTPUT_DIR, .env) > specprep.yaml > built-in defaults.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Input data missing or unreadable (FITS files, spectra)
  12 - Output file exists and clobbering is disabled
  13 - Data integrity error (catalog match, shape, schema, unknown cluster)`,
	Args:         cobra.NoArgs,
	RunE:         runPipeline,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&runFlags.verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&runFlags.configPath, "config", "", "Path to specprep.yaml (default: <data-dir>/specprep.yaml)")
	flags.StringVar(&runFlags.dataDir, "data-dir", "", "Directory holding the APOGEE inputs (env: "+EnvDataDir+")")
	flags.StringVar(&runFlags.outputDir, "output-dir", "", "Directory receiving the samples (env: "+EnvOutputDir+")")
	flags.BoolVar(&runFlags.noClobber, "no-clobber", false, "Fail instead of replacing existing output files")
}
