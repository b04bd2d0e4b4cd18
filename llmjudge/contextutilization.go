package llmjudge

import (
	"context"

	"github.com/datar-psa/ragmetrics/api"
	"github.com/datar-psa/ragmetrics/prompt"
)

// ContextUtilization measures how much of the generated answer is built from the
// retrieved context. The judge model is asked for a number in [0,1] and its reply
// is used verbatim as the score.
type ContextUtilization struct {
	judge numericJudge
}

// NewContextUtilization returns a Context Utilization metric bound to llm.
// The metric is stateless and may be shared by concurrent callers when llm is.
func NewContextUtilization(llm api.LLMGenerator, opts ...Option) *ContextUtilization {
	return &ContextUtilization{
		judge: newNumericJudge("Context Utilization", llm, prompt.ContextUtilization, opts),
	}
}

// Name returns "Context Utilization"
func (m *ContextUtilization) Name() string { return m.judge.name }

// Type returns api.NonBinary
func (m *ContextUtilization) Type() api.MetricType { return api.NonBinary }

// Score renders the prompt with the record, calls the model once and parses the reply.
// Errors from the model client propagate unchanged; a reply that is not a float
// is logged and returned as api.ErrUnexpectedResponse.
func (m *ContextUtilization) Score(ctx context.Context, record api.DataRecord) (*api.MetricResult, error) {
	return m.judge.score(ctx, m, record)
}

// Reason is not supported and always returns api.ErrNotImplemented
func (m *ContextUtilization) Reason(ctx context.Context, record api.DataRecord, score float64) (string, error) {
	return "", api.ErrNotImplemented
}

var _ api.Metric = (*ContextUtilization)(nil)
