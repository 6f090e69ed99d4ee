package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/specprep/specprep/pkg/specprep"
)

// SampleReport describes one written sample.
type SampleReport struct {
	Name    string
	Stars   int
	Pixels  int
	Columns int
	QC      specprep.QCReport
	Output  specprep.WriteResult
}

// RunReport describes a completed run.
type RunReport struct {
	RunID    string
	Samples  []SampleReport
	Duration time.Duration
}

// Pipeline runs the parallax and cluster loaders and writes their samples
// and the merged sample.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Pipeline struct {
	parallax specprep.SampleLoader
	cluster  specprep.SampleLoader
	writer   specprep.SampleWriter
	logger   specprep.Logger
	config   specprep.PipelineConfig
	newRunID func() string
	now      func() time.Time
}

// NewPipeline creates a Pipeline with all dependencies injected.
// Panics on nil dependencies; configuration problems are reported by Run.
func NewPipeline(
	parallax specprep.SampleLoader,
	cluster specprep.SampleLoader,
	writer specprep.SampleWriter,
	logger specprep.Logger,
	config specprep.PipelineConfig,
) *Pipeline {
	if parallax == nil {
		panic("parallax cannot be nil")
	}
	if cluster == nil {
		panic("cluster cannot be nil")
	}
	if writer == nil {
		panic("writer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Pipeline{
		parallax: parallax,
		cluster:  cluster,
		writer:   writer,
		logger:   logger,
		config:   config,
		newRunID: uuid.NewString,
		now:      time.Now,
	}
}

// Run executes the three stages in order. Cancellation is honoured between
// stages; a stage in progress runs to completion.
func (p *Pipeline) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{RunID: p.newRunID()}
	start := p.now()

	if err := p.config.Validate(); err != nil {
		return report, err
	}
	p.logger.Verbose("Run %s: data %s, output %s, clobber=%t", report.RunID, p.config.DataDir, p.config.OutputDir, p.config.Clobber)

	parallax, err := p.loadAndWrite(ctx, &report, "parallax", p.parallax, p.config.Parallax.Prefix)
	if err != nil {
		return report, err
	}

	cluster, err := p.loadAndWrite(ctx, &report, "cluster", p.cluster, p.config.Cluster.Prefix)
	if err != nil {
		return report, err
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	p.logger.Info("Merging %d parallax and %d cluster stars", parallax.NumStars(), cluster.NumStars())
	merged, err := MergeSamples(parallax, cluster)
	if err != nil {
		return report, err
	}
	if err := p.write(&report, merged, p.config.MergedPrefix); err != nil {
		return report, err
	}

	report.Duration = p.now().Sub(start)
	return report, nil
}

func (p *Pipeline) loadAndWrite(ctx context.Context, report *RunReport, name string, loader specprep.SampleLoader, prefix string) (*specprep.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logger.Info("Loading %s sample", name)
	sample, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s sample: %w", name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.write(report, sample, prefix); err != nil {
		return nil, err
	}
	return sample, nil
}

func (p *Pipeline) write(report *RunReport, sample *specprep.Sample, prefix string) error {
	p.logger.Info("Writing %s sample to %s", sample.Name, prefix)
	result, err := p.writer.Write(sample, prefix, p.config.Clobber)
	if err != nil {
		return fmt.Errorf("failed to write %s sample: %w", sample.Name, err)
	}
	report.Samples = append(report.Samples, SampleReport{
		Name:    sample.Name,
		Stars:   sample.NumStars(),
		Pixels:  sample.NumPixels(),
		Columns: sample.Catalog.NumCols(),
		QC:      sample.QC,
		Output:  result,
	})
	return nil
}
