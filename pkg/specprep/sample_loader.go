package specprep

import "context"

// SampleLoader builds a quality-controlled sample from raw input files.
type SampleLoader interface {
	Load(ctx context.Context) (*Sample, error)
}

// SampleWriter persists a sample under an output prefix.
type SampleWriter interface {
	// Write stores the catalog and both matrices under prefix. When clobber is
	// false and any target exists, Write fails with ErrFileExists before any
	// file is touched.
	Write(sample *Sample, prefix string, clobber bool) (WriteResult, error)
}

// WriteResult describes the files produced by a SampleWriter.
type WriteResult struct {
	Prefix string
	Files  []WrittenFile
}

// WrittenFile is a single output artifact.
type WrittenFile struct {
	Path      string
	SizeBytes int64
	Checksum  string
}
