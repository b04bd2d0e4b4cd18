package llmjudge

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/datar-psa/ragmetrics/api"
	"github.com/datar-psa/ragmetrics/logging"
	"github.com/datar-psa/ragmetrics/prompt"
)

// Options configures the LLM-judge metrics
type Options struct {
	// Prompt overrides the metric's built-in prompt
	Prompt *prompt.Prompt
	// Logger receives the error entry emitted on unparseable responses
	Logger logging.Logger
}

// Option mutates Options
type Option func(*Options)

// WithPrompt binds a custom prompt template
func WithPrompt(p *prompt.Prompt) Option {
	return func(opts *Options) {
		opts.Prompt = p
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

// numericJudge renders a prompt, asks the model once and reads the reply as a float.
// It holds no per-call state.
type numericJudge struct {
	name   string
	llm    api.LLMGenerator
	prompt *prompt.Prompt
	logger logging.Logger
}

func newNumericJudge(name string, llm api.LLMGenerator, def func() *prompt.Prompt, opts []Option) numericJudge {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.Prompt == nil {
		options.Prompt = def()
	}
	if options.Logger == nil {
		options.Logger = logging.NewDefaultSlogLogger()
	}
	return numericJudge{
		name:   name,
		llm:    llm,
		prompt: options.Prompt,
		logger: options.Logger,
	}
}

func (j *numericJudge) score(ctx context.Context, metric api.Metric, record api.DataRecord) (*api.MetricResult, error) {
	start := time.Now()

	if j.llm == nil {
		return nil, api.ErrNoLLM
	}

	rendered, err := j.prompt.Render(record.Fields())
	if err != nil {
		return nil, err
	}

	response, err := j.llm.Generate(ctx, rendered)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, fmt.Errorf("%s: %w: nil response", j.name, api.ErrLLMGenerationFailed)
	}

	score, err := parseScore(response.Text)
	if err != nil {
		j.logger.Error("Got unexpected LLM response",
			"metric", j.name,
			"response", response.Text,
		)
		return nil, err
	}

	return &api.MetricResult{
		Record:      record,
		Metric:      metric,
		Score:       score,
		Reason:      nil,
		ProcessTime: time.Since(start),
	}, nil
}

// parseScore reads the whole response as a float, ignoring surrounding whitespace
func parseScore(raw string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", api.ErrUnexpectedResponse, raw)
	}
	return score, nil
}
