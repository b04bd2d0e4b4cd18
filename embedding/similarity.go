package embedding

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/datar-psa/ragmetrics/api"
)

// AnswerSimilarity measures semantic similarity between the answer and the ground truth.
// It computes cosine similarity between the two embeddings and maps it to [0,1].
type AnswerSimilarity struct {
	embedder api.Embedder
}

// NewAnswerSimilarity returns an Answer Similarity metric backed by embedder
func NewAnswerSimilarity(embedder api.Embedder) *AnswerSimilarity {
	return &AnswerSimilarity{embedder: embedder}
}

func (m *AnswerSimilarity) Name() string { return "Answer Similarity" }

func (m *AnswerSimilarity) Type() api.MetricType { return api.NonBinary }

func (m *AnswerSimilarity) Score(ctx context.Context, record api.DataRecord) (*api.MetricResult, error) {
	start := time.Now()

	if record.GroundTruth == "" {
		return nil, api.ErrNoGroundTruth
	}

	if m.embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	answerEmbed, err := m.embedder.Embed(ctx, record.Answer)
	if err != nil {
		return nil, fmt.Errorf("failed to embed answer: %w", err)
	}

	truthEmbed, err := m.embedder.Embed(ctx, record.GroundTruth)
	if err != nil {
		return nil, fmt.Errorf("failed to embed ground truth: %w", err)
	}

	if len(answerEmbed) != len(truthEmbed) {
		return nil, fmt.Errorf("embedding dimensions differ: %d vs %d", len(answerEmbed), len(truthEmbed))
	}

	// Normalize from [-1, 1] to [0, 1]
	score := (cosineSimilarity(answerEmbed, truthEmbed) + 1.0) / 2.0
	score = math.Max(0, math.Min(1, score))

	return &api.MetricResult{
		Record:      record,
		Metric:      m,
		Score:       score,
		ProcessTime: time.Since(start),
	}, nil
}

func (m *AnswerSimilarity) Reason(ctx context.Context, record api.DataRecord, score float64) (string, error) {
	return "", api.ErrNotImplemented
}

// cosineSimilarity computes the cosine similarity between two vectors
// Returns a value between -1 and 1, where 1 means identical direction
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}

var _ api.Metric = (*AnswerSimilarity)(nil)
