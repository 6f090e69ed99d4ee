// Package samples loads the cluster and parallax samples.
//
// Each loader reads per-star spectra and a master catalog through a
// filesystem.FileSystemProvider, stacks the spectra into flux and
// uncertainty matrices, runs quality.Clean over them and attaches the
// distance modulus column "mu" to the catalog subset it selects.
// Spectra are read one file at a time; nothing is held open between files.
package samples
