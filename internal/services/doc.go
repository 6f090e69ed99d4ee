// Package services orchestrates a full preparation run: load and write the
// parallax sample, load and write the cluster sample, then merge the two and
// write the combined sample.
package services
