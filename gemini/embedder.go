package gemini

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/genai"

	"github.com/datar-psa/ragmetrics/api"
)

// Embedder wraps a genai.Client to implement the Embedder interface
type Embedder struct {
	client    *genai.Client
	modelName string
}

// NewEmbedder creates a new Gemini embedder
// modelName: the embedding model to use (e.g., "text-embedding-005")
func NewEmbedder(client *genai.Client, modelName string) *Embedder {
	return &Embedder{
		client:    client,
		modelName: modelName,
	}
}

// Embed implements Embedder.Embed.
// Vectors are requested for semantic similarity and returned with unit length.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: text},
			},
		},
	}

	result, err := e.client.Models.EmbedContent(ctx, e.modelName, contents, &genai.EmbedContentConfig{
		TaskType: "SEMANTIC_SIMILARITY",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	values := result.Embeddings[0].Values
	embedding := make([]float64, len(values))
	var norm float64
	for i, v := range values {
		embedding[i] = float64(v)
		norm += embedding[i] * embedding[i]
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil, fmt.Errorf("zero embedding vector")
	}
	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding, nil
}

var _ api.Embedder = (*Embedder)(nil)
