package specprep

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Pipeline completed successfully
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (unknown flags, bad arguments)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration
	ExitInputError    = 11 // Missing or unreadable input data
	ExitFileExists    = 12 // Output exists and clobbering is disabled
	ExitDataIntegrity = 13 // Catalog match, shape or schema failure
)

const (
	// FluxSentinel replaces flux values that are non-positive or non-finite.
	FluxSentinel = 1.0

	// UncertaintySentinel replaces unusable uncertainties. It marks a pixel as
	// carrying no information for downstream weighted fits.
	UncertaintySentinel = 1e8

	// MuColumn is the catalog column holding the distance modulus.
	MuColumn = "mu"

	// CatalogSuffix, FluxSuffix and UncertaintySuffix are appended to an output prefix.
	CatalogSuffix     = ".fits.gz"
	FluxSuffix        = "-flux.memmap"
	UncertaintySuffix = "-flux-uncertainties.memmap"
)

// Defaults reproduce the directory layout of the APOGEE DR12 working tree.
const (
	DefaultClusterCatalog        = "APOGEE-allStar-v603.fits"
	DefaultClusterSpectraGlob    = "APOGEE/Clusters/*/*.fits"
	DefaultClusterFileColumn     = "FILE"
	DefaultSpectrumFilePrefix    = "aspcapStar-r5-v603-"
	DefaultCatalogFilePrefix     = "apStar-r5-"
	DefaultParallaxCatalog       = "APOGEE-allStar-v603-Hipparcos.fits.gz"
	DefaultParallaxSpectraFormat = "APOGEE/aspCap/HIP%v.fits"
	DefaultParallaxIDColumn      = "HIP"
	DefaultParallaxColumn        = "Plx"
	DefaultTeffColumn            = "TEFF"
	DefaultTeffMax               = 5500.0
	DefaultFlagColumn            = "ASPCAPFLAG"

	DefaultParallaxPrefix = "APOGEE-Hipparcos"
	DefaultClusterPrefix  = "APOGEE-Clusters"
	DefaultMergedPrefix   = "APOGEE-Clusters+Hipparcos"

	// FluxHDU and UncertaintyHDU are the image extensions of a spectrum file.
	FluxHDU        = 1
	UncertaintyHDU = 2

	// CatalogHDU is the binary table extension of a catalog file.
	CatalogHDU = 1
)
