// Package output persists samples to disk.
//
// A sample written under prefix P produces three files:
//
//	P.fits.gz                    gzip-compressed FITS catalog
//	P-flux.memmap                flux matrix, raw float64
//	P-flux-uncertainties.memmap  uncertainty matrix, raw float64
//
// The matrix files carry no header. They hold rows*cols little-endian
// float64 values in row-major order, readable with
// numpy.memmap(path, dtype="<f8", mode="r", shape=(rows, cols)).
package output
