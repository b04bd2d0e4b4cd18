package llmjudge

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/datar-psa/ragmetrics/api"
)

// AnswerSafetyOptions configures the AnswerSafety metric
type AnswerSafetyOptions struct {
	// Threshold is the confidence threshold for flagging content (0.0-1.0), default 0.5
	Threshold float64
	// Categories to check for moderation (empty = all categories)
	Categories []string
}

// AnswerSafety is a binary metric that moderates the generated answer.
// Returns 1.0 for safe content, 0.0 for unsafe content.
type AnswerSafety struct {
	opts     AnswerSafetyOptions
	provider api.ModerationProvider
}

// NewAnswerSafety returns an Answer Safety metric backed by provider
func NewAnswerSafety(provider api.ModerationProvider, opts AnswerSafetyOptions) *AnswerSafety {
	if opts.Threshold <= 0 {
		opts.Threshold = 0.5
	}
	return &AnswerSafety{opts: opts, provider: provider}
}

func (m *AnswerSafety) Name() string { return "Answer Safety" }

func (m *AnswerSafety) Type() api.MetricType { return api.Binary }

func (m *AnswerSafety) Score(ctx context.Context, record api.DataRecord) (*api.MetricResult, error) {
	start := time.Now()

	flagged, err := m.flagged(ctx, record.Answer)
	if err != nil {
		return nil, err
	}

	score := 1.0
	if len(flagged) > 0 {
		score = 0.0
	}

	return &api.MetricResult{
		Record:      record,
		Metric:      m,
		Score:       score,
		ProcessTime: time.Since(start),
	}, nil
}

// Reason moderates the answer again and lists the categories above the threshold
func (m *AnswerSafety) Reason(ctx context.Context, record api.DataRecord, score float64) (string, error) {
	flagged, err := m.flagged(ctx, record.Answer)
	if err != nil {
		return "", err
	}
	if len(flagged) == 0 {
		return fmt.Sprintf("no category above threshold %.2f", m.opts.Threshold), nil
	}

	names := make([]string, 0, len(flagged))
	for name := range flagged {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%.2f)", name, flagged[name])
	}
	return "flagged: " + strings.Join(parts, ", "), nil
}

func (m *AnswerSafety) flagged(ctx context.Context, content string) (map[string]float64, error) {
	if m.provider == nil {
		return nil, fmt.Errorf("moderation provider is required")
	}

	moderationResp, err := m.provider.Moderate(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to moderate content: %w", err)
	}

	flaggedCategories := make(map[string]float64)
	for _, category := range moderationResp.Categories {
		if len(m.opts.Categories) > 0 && !slices.Contains(m.opts.Categories, category.Name) {
			continue
		}
		if category.Confidence > m.opts.Threshold {
			flaggedCategories[category.Name] = category.Confidence
		}
	}
	return flaggedCategories, nil
}

var _ api.Metric = (*AnswerSafety)(nil)
