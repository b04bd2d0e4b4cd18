package api

import (
	"context"
	"strings"
	"time"
)

// Response is the text produced by a single LLM generation call
type Response struct {
	// Text is the raw completion returned by the model
	Text string
	// Model is the model identifier reported by the provider, if any
	Model string
	// FinishReason is the provider specific stop reason, if any
	FinishReason string
}

// LLMGenerator is an interface for generating text using an LLM
// This interface must be implemented by library consumers
// Gemini, OpenAI and Anthropic implementations are provided in their subpackages
type LLMGenerator interface {
	// Generate generates text based on the provided prompt
	// Returns the generated response or an error
	Generate(ctx context.Context, prompt string) (*Response, error)
}

// Embedder generates vector embeddings for text
type Embedder interface {
	// Embed generates an embedding vector for the given text
	// Returns a normalized vector (length = 1) suitable for cosine similarity
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ModerationCategories contains all supported moderation category names
// These are developer-friendly names that map to Google Cloud Natural Language API categories
var ModerationCategories []string = []string{
	"Toxic",
	"Derogatory",
	"Violent",
	"Sexual",
	"Insult",
	"Profanity",
	"DeathHarmTragedy",
	"FirearmsWeapons",
	"PublicSafety",
	"Health",
	"ReligionBelief",
	"IllicitDrugs",
	"WarConflict",
	"Finance",
	"Politics",
	"Legal",
}

// ModerationCategory represents a safety category with confidence score
type ModerationCategory struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ModerationResult represents the result of content moderation
type ModerationResult struct {
	Categories []ModerationCategory `json:"categories"`
}

// ModerationProvider is an interface for content moderation
// A Google Cloud Natural Language implementation is provided in the gemini subpackage
type ModerationProvider interface {
	// Moderate analyzes content for safety and returns moderation results
	Moderate(ctx context.Context, content string) (*ModerationResult, error)
}

// DataRecord is one evaluation unit of a RAG pipeline run.
//
// Fields usage conventions:
// - Question:    the user question given to the pipeline
// - Context:     the retrieved passages the answer was generated from
// - Answer:      the generated answer
// - GroundTruth: the reference answer (optional depending on metric)
// - Extra:       additional named fields for custom prompt templates
type DataRecord struct {
	Question    string
	Context     []string
	Answer      string
	GroundTruth string
	Extra       map[string]string
}

// Fields returns the record as a field name to value mapping for prompt rendering.
// Extra entries never override the typed fields.
func (r DataRecord) Fields() map[string]string {
	fields := make(map[string]string, len(r.Extra)+4)
	for k, v := range r.Extra {
		fields[k] = v
	}
	fields["question"] = r.Question
	fields["context"] = strings.Join(r.Context, "\n")
	fields["answer"] = r.Answer
	fields["ground_truth"] = r.GroundTruth
	return fields
}

// MetricType tells whether a metric yields a pass/fail or a continuous score
type MetricType int

const (
	// NonBinary metrics produce a continuous score
	NonBinary MetricType = iota
	// Binary metrics produce 0 or 1
	Binary
)

func (t MetricType) String() string {
	switch t {
	case Binary:
		return "binary"
	case NonBinary:
		return "non-binary"
	default:
		return "unknown"
	}
}

// Metric scores a DataRecord
type Metric interface {
	// Name is the human readable label used as reporting key
	Name() string
	// Type is fixed at construction
	Type() MetricType
	// Score evaluates a single record
	Score(ctx context.Context, record DataRecord) (*MetricResult, error)
	// Reason explains a score previously produced for the record
	Reason(ctx context.Context, record DataRecord, score float64) (string, error)
}

// MetricResult is the outcome of one scoring call
type MetricResult struct {
	// Record is the scored input
	Record DataRecord
	// Metric is the metric that produced this result
	Metric Metric
	// Score is the metric value
	Score float64
	// Reason is nil unless the metric produced an explanation
	Reason *string
	// ProcessTime is the wall time spent scoring
	ProcessTime time.Duration
}

// Seconds returns the process time in seconds
func (r *MetricResult) Seconds() float64 {
	return r.ProcessTime.Seconds()
}
