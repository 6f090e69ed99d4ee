// Package fitsfile reads and writes the FITS files handled by specprep.
//
// Spectra are files whose image extensions 1 and 2 hold the flux and the flux
// uncertainty. Catalogs are files whose first extension is a binary table.
// Gzip-compressed input is detected from its magic bytes and inflated
// transparently, so "catalog.fits" and "catalog.fits.gz" are read the same way.
package fitsfile
