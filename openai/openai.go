// Package openai provides an api.LLMGenerator backed by the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/datar-psa/ragmetrics/api"
)

// Options configure the OpenAI generator.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	// System is sent as a system message ahead of the prompt when set
	System string
}

// Generator wraps the OpenAI Chat Completions API behind api.LLMGenerator.
type Generator struct {
	client *openai.Client
	opts   Options
}

// NewGenerator creates a generator using the official client configured from the environment
func NewGenerator(optFns ...func(o *Options)) *Generator {
	client := openai.NewClient()
	return NewGeneratorFromClient(&client, optFns...)
}

// NewGeneratorFromClient creates a generator from an existing client
func NewGeneratorFromClient(client *openai.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0,
		MaxCompletionTokens: 64,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Generator{client: client, opts: opts}
}

// Generate sends the prompt as a single user message and returns the first choice.
func (g *Generator) Generate(ctx context.Context, prompt string) (*api.Response, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if g.opts.System != "" {
		messages = append(messages, openai.SystemMessage(g.opts.System))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               g.opts.Model,
		Temperature:         openai.Float(g.opts.Temperature),
		MaxCompletionTokens: openai.Int(g.opts.MaxCompletionTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", api.ErrLLMGenerationFailed)
	}

	ch0 := resp.Choices[0]
	return &api.Response{
		Text:         ch0.Message.Content,
		Model:        resp.Model,
		FinishReason: ch0.FinishReason,
	}, nil
}

var _ api.LLMGenerator = (*Generator)(nil)
