// Package ragmetrics scores retrieval-augmented generation output with
// LLM-as-a-judge, embedding and heuristic metrics.
//
// Metrics are built from explicit factories and injected wherever they are
// needed; there are no package-level default instances.
package ragmetrics

import (
	"context"

	language "cloud.google.com/go/language/apiv1"
	"google.golang.org/genai"

	"github.com/datar-psa/ragmetrics/anthropic"
	"github.com/datar-psa/ragmetrics/api"
	"github.com/datar-psa/ragmetrics/embedding"
	"github.com/datar-psa/ragmetrics/evaluate"
	"github.com/datar-psa/ragmetrics/gemini"
	"github.com/datar-psa/ragmetrics/heuristic"
	"github.com/datar-psa/ragmetrics/llmjudge"
	"github.com/datar-psa/ragmetrics/logging"
	"github.com/datar-psa/ragmetrics/openai"
)

type DataRecord = api.DataRecord
type Metric = api.Metric
type MetricType = api.MetricType
type MetricResult = api.MetricResult
type Response = api.Response
type LLMGenerator = api.LLMGenerator
type Embedder = api.Embedder
type ModerationProvider = api.ModerationProvider
type ModerationCategory = api.ModerationCategory
type ModerationResult = api.ModerationResult

const (
	Binary    = api.Binary
	NonBinary = api.NonBinary
)

var ModerationCategories = api.ModerationCategories

// Judge wraps an LLM generator and exposes convenient constructors for LLM-as-a-judge metrics.
// It allows creating metrics like ContextUtilization without passing the LLM each time.
type Judge struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
	logger     logging.Logger
}

// JudgeOptions configures Judge creation
type JudgeOptions struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
	logger     logging.Logger
}

// WithLLMGenerator sets the LLM generator for the judge
func WithLLMGenerator(llm api.LLMGenerator) func(*JudgeOptions) {
	return func(opts *JudgeOptions) {
		opts.llm = llm
	}
}

// WithModerationProvider sets the moderation provider for the judge
func WithModerationProvider(provider api.ModerationProvider) func(*JudgeOptions) {
	return func(opts *JudgeOptions) {
		opts.moderation = provider
	}
}

// WithLogger sets the logger handed to every metric the judge builds
func WithLogger(logger logging.Logger) func(*JudgeOptions) {
	return func(opts *JudgeOptions) {
		opts.logger = logger
	}
}

// NewJudge creates a new Judge using functional options.
func NewJudge(opts ...func(*JudgeOptions)) *Judge {
	options := &JudgeOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Judge{
		llm:        options.llm,
		moderation: options.moderation,
		logger:     options.logger,
	}
}

// GeminiOptions configures Gemini Judge creation
type GeminiOptions struct {
	genaiClient *genai.Client
	modelName   string
	langClient  *language.Client
	logger      logging.Logger
}

// WithGenaiClient sets the Gemini client
func WithGenaiClient(client *genai.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.genaiClient = client
	}
}

// WithModelName sets the Gemini model name
func WithModelName(modelName string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.modelName = modelName
	}
}

// WithLanguageClient sets the Google Cloud Language client for moderation
func WithLanguageClient(langClient *language.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.langClient = langClient
	}
}

// WithGeminiLogger sets the logger handed to every metric the judge builds
func WithGeminiLogger(logger logging.Logger) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.logger = logger
	}
}

// NewGeminiJudge creates a Judge using Gemini client and model name.
// Example model: "publishers/google/models/gemini-2.5-flash".
func NewGeminiJudge(opts ...func(*GeminiOptions)) *Judge {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	judgeOptions := []func(*JudgeOptions){WithLogger(options.logger)}

	// Only add LLM generator if genaiClient is provided
	if options.genaiClient != nil && options.modelName != "" {
		judgeOptions = append(judgeOptions, WithLLMGenerator(gemini.NewGenerator(options.genaiClient, options.modelName)))
	}

	// Only add moderation provider if langClient is provided
	if options.langClient != nil {
		judgeOptions = append(judgeOptions, WithModerationProvider(gemini.NewGoogleLanguageProvider(options.langClient)))
	}

	return NewJudge(judgeOptions...)
}

// NewOpenAIJudge creates a Judge backed by OpenAI Chat Completions.
// The client reads OPENAI_API_KEY from the environment.
func NewOpenAIJudge(optFns ...func(*openai.Options)) *Judge {
	return NewJudge(WithLLMGenerator(openai.NewGenerator(optFns...)))
}

// NewAnthropicJudge creates a Judge backed by the Anthropic Messages API.
func NewAnthropicJudge(optFns ...func(*anthropic.Options)) *Judge {
	return NewJudge(WithLLMGenerator(anthropic.NewGenerator(optFns...)))
}

func (j *Judge) metricOptions(opts []llmjudge.Option) []llmjudge.Option {
	if j.logger == nil {
		return opts
	}
	return append([]llmjudge.Option{llmjudge.WithLogger(j.logger)}, opts...)
}

// ContextUtilization returns the Context Utilization metric bound to the judge's LLM.
func (j *Judge) ContextUtilization(opts ...llmjudge.Option) *llmjudge.ContextUtilization {
	return llmjudge.NewContextUtilization(j.llm, j.metricOptions(opts)...)
}

// ContextRelevancy returns the Context Relevancy metric bound to the judge's LLM.
func (j *Judge) ContextRelevancy(opts ...llmjudge.Option) *llmjudge.ContextRelevancy {
	return llmjudge.NewContextRelevancy(j.llm, j.metricOptions(opts)...)
}

// ResponseRelevancy returns the Response Relevancy metric bound to the judge's LLM.
func (j *Judge) ResponseRelevancy(opts ...llmjudge.Option) *llmjudge.ResponseRelevancy {
	return llmjudge.NewResponseRelevancy(j.llm, j.metricOptions(opts)...)
}

type AnswerSafetyOptions = llmjudge.AnswerSafetyOptions

// AnswerSafety returns a binary metric that moderates the answer with the judge's moderation provider.
func (j *Judge) AnswerSafety(opts AnswerSafetyOptions) *llmjudge.AnswerSafety {
	return llmjudge.NewAnswerSafety(j.moderation, opts)
}

// Embedding wraps an embedder and exposes convenient constructors for embedding-based metrics.
type Embedding struct{ embedder api.Embedder }

// EmbeddingOptions configures Embedding creation
type EmbeddingOptions struct {
	embedder api.Embedder
}

// WithEmbedder sets the embedder
func WithEmbedder(embedder api.Embedder) func(*EmbeddingOptions) {
	return func(opts *EmbeddingOptions) {
		opts.embedder = embedder
	}
}

// NewEmbedding creates a new Embedding wrapper using functional options.
func NewEmbedding(opts ...func(*EmbeddingOptions)) *Embedding {
	options := &EmbeddingOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Embedding{embedder: options.embedder}
}

// NewGeminiEmbedding creates an Embedding using Gemini client and model name.
// Example model: "text-embedding-005".
func NewGeminiEmbedding(opts ...func(*GeminiOptions)) *Embedding {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var embeddingOptions []func(*EmbeddingOptions)
	if options.genaiClient != nil && options.modelName != "" {
		embeddingOptions = append(embeddingOptions, WithEmbedder(gemini.NewEmbedder(options.genaiClient, options.modelName)))
	}

	return NewEmbedding(embeddingOptions...)
}

// AnswerSimilarity returns a metric that compares answer and ground truth embeddings.
func (e *Embedding) AnswerSimilarity() *embedding.AnswerSimilarity {
	return embedding.NewAnswerSimilarity(e.embedder)
}

// Heuristic exposes convenient constructors for heuristic metrics.
type Heuristic struct{}

// NewHeuristic creates a new Heuristic.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

type ExactMatchOptions = heuristic.ExactMatchOptions

// ExactMatch returns a binary metric that checks if the answer exactly matches the ground truth.
func (h *Heuristic) ExactMatch(opts ExactMatchOptions) *heuristic.ExactMatch {
	return heuristic.NewExactMatch(opts)
}

type Report = evaluate.Report
type EvaluateOption = evaluate.Option

// Evaluate scores every record with every metric. See evaluate.Evaluate.
func Evaluate(ctx context.Context, records []DataRecord, metrics []Metric, opts ...EvaluateOption) (*Report, error) {
	return evaluate.Evaluate(ctx, records, metrics, opts...)
}
