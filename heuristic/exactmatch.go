package heuristic

import (
	"context"
	"strings"
	"time"

	"github.com/datar-psa/ragmetrics/api"
)

// ExactMatchOptions configures the ExactMatch metric
type ExactMatchOptions struct {
	// CaseInsensitive determines if the comparison should ignore case
	CaseInsensitive bool
	// TrimWhitespace determines if leading and trailing whitespace should be trimmed
	TrimWhitespace bool
}

// ExactMatch is a binary metric that checks if the answer exactly matches the ground truth
type ExactMatch struct {
	opts ExactMatchOptions
}

// NewExactMatch returns an Exact Match metric
func NewExactMatch(opts ExactMatchOptions) *ExactMatch {
	return &ExactMatch{opts: opts}
}

func (m *ExactMatch) Name() string { return "Exact Match" }

func (m *ExactMatch) Type() api.MetricType { return api.Binary }

func (m *ExactMatch) Score(ctx context.Context, record api.DataRecord) (*api.MetricResult, error) {
	start := time.Now()

	if record.GroundTruth == "" {
		return nil, api.ErrNoGroundTruth
	}

	score := 0.0
	if m.normalize(record.Answer) == m.normalize(record.GroundTruth) {
		score = 1.0
	}

	return &api.MetricResult{
		Record:      record,
		Metric:      m,
		Score:       score,
		ProcessTime: time.Since(start),
	}, nil
}

func (m *ExactMatch) Reason(ctx context.Context, record api.DataRecord, score float64) (string, error) {
	if score == 1 {
		return "answer matches the ground truth", nil
	}
	return "answer differs from the ground truth", nil
}

func (m *ExactMatch) normalize(s string) string {
	if m.opts.TrimWhitespace {
		s = strings.TrimSpace(s)
	}
	if m.opts.CaseInsensitive {
		s = strings.ToLower(s)
	}
	return s
}

var _ api.Metric = (*ExactMatch)(nil)
