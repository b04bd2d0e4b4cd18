package llmjudge

import (
	"context"

	"github.com/datar-psa/ragmetrics/api"
	"github.com/datar-psa/ragmetrics/prompt"
)

// ContextRelevancy scores how relevant the retrieved context is to the question
type ContextRelevancy struct {
	judge numericJudge
}

// NewContextRelevancy returns a Context Relevancy metric bound to llm
func NewContextRelevancy(llm api.LLMGenerator, opts ...Option) *ContextRelevancy {
	return &ContextRelevancy{
		judge: newNumericJudge("Context Relevancy", llm, prompt.ContextRelevancy, opts),
	}
}

func (m *ContextRelevancy) Name() string { return m.judge.name }

func (m *ContextRelevancy) Type() api.MetricType { return api.NonBinary }

func (m *ContextRelevancy) Score(ctx context.Context, record api.DataRecord) (*api.MetricResult, error) {
	return m.judge.score(ctx, m, record)
}

func (m *ContextRelevancy) Reason(ctx context.Context, record api.DataRecord, score float64) (string, error) {
	return "", api.ErrNotImplemented
}

// ResponseRelevancy scores how directly the answer addresses the question
type ResponseRelevancy struct {
	judge numericJudge
}

// NewResponseRelevancy returns a Response Relevancy metric bound to llm
func NewResponseRelevancy(llm api.LLMGenerator, opts ...Option) *ResponseRelevancy {
	return &ResponseRelevancy{
		judge: newNumericJudge("Response Relevancy", llm, prompt.ResponseRelevancy, opts),
	}
}

func (m *ResponseRelevancy) Name() string { return m.judge.name }

func (m *ResponseRelevancy) Type() api.MetricType { return api.NonBinary }

func (m *ResponseRelevancy) Score(ctx context.Context, record api.DataRecord) (*api.MetricResult, error) {
	return m.judge.score(ctx, m, record)
}

func (m *ResponseRelevancy) Reason(ctx context.Context, record api.DataRecord, score float64) (string, error) {
	return "", api.ErrNotImplemented
}

var (
	_ api.Metric = (*ContextRelevancy)(nil)
	_ api.Metric = (*ResponseRelevancy)(nil)
)
