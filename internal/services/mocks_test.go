package services

import (
	"context"

	"github.com/specprep/specprep/pkg/specprep"
)

type mockLoader struct {
	name   string
	sample *specprep.Sample
	err    error
	events *[]string
}

func (m *mockLoader) Load(_ context.Context) (*specprep.Sample, error) {
	*m.events = append(*m.events, "load "+m.name)
	return m.sample, m.err
}

type writeCall struct {
	sample  *specprep.Sample
	prefix  string
	clobber bool
}

type mockWriter struct {
	calls  []writeCall
	failOn string
	err    error
	events *[]string
}

func (m *mockWriter) Write(sample *specprep.Sample, prefix string, clobber bool) (specprep.WriteResult, error) {
	*m.events = append(*m.events, "write "+prefix)
	if prefix == m.failOn {
		return specprep.WriteResult{}, m.err
	}
	m.calls = append(m.calls, writeCall{sample: sample, prefix: prefix, clobber: clobber})
	return specprep.WriteResult{Prefix: prefix}, nil
}
