package llmjudge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/datar-psa/ragmetrics/api"
	"github.com/datar-psa/ragmetrics/logging"
	"github.com/datar-psa/ragmetrics/prompt"
)

// mockLLMGenerator is a simple mock for unit tests
type mockLLMGenerator struct {
	response string
	err      error

	mu      sync.Mutex
	prompts []string
}

func (m *mockLLMGenerator) Generate(ctx context.Context, prompt string) (*api.Response, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &api.Response{Text: m.response}, nil
}

func (m *mockLLMGenerator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// syncBuffer lets concurrent scorers share one log sink
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (logging.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LogLevelDebug,
		Format: "text",
		Output: buf,
	}), buf
}

var franceRecord = api.DataRecord{
	Question: "What is the capital of France?",
	Context:  []string{"Paris is the capital of France."},
	Answer:   "Paris",
}

func TestContextUtilization_Unit(t *testing.T) {
	ctx := context.Background()
	upstream := fmt.Errorf("API error")

	tests := []struct {
		name        string
		llmResponse string
		llmErr      error
		wantErr     error
		wantScore   float64
		wantLogged  bool
	}{
		{
			name:        "fractional score",
			llmResponse: "0.82",
			wantScore:   0.82,
		},
		{
			name:        "full score",
			llmResponse: "1.0",
			wantScore:   1.0,
		},
		{
			name:        "surrounding whitespace",
			llmResponse: "  0.5\n",
			wantScore:   0.5,
		},
		{
			name:        "integer literal",
			llmResponse: "0",
			wantScore:   0,
		},
		{
			name:        "out of range is not normalized",
			llmResponse: "7.5",
			wantScore:   7.5,
		},
		{
			name:        "yes",
			llmResponse: "yes",
			wantErr:     api.ErrUnexpectedResponse,
			wantLogged:  true,
		},
		{
			name:        "empty",
			llmResponse: "",
			wantErr:     api.ErrUnexpectedResponse,
			wantLogged:  true,
		},
		{
			name:        "N/A",
			llmResponse: "N/A",
			wantErr:     api.ErrUnexpectedResponse,
			wantLogged:  true,
		},
		{
			name:        "score with prose",
			llmResponse: "Score: 0.9",
			wantErr:     api.ErrUnexpectedResponse,
			wantLogged:  true,
		},
		{
			name:    "llm error propagates",
			llmErr:  upstream,
			wantErr: upstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newTestLogger()
			mockLLM := &mockLLMGenerator{response: tt.llmResponse, err: tt.llmErr}

			metric := NewContextUtilization(mockLLM, WithLogger(logger))
			result, err := metric.Score(ctx, franceRecord)

			if mockLLM.calls() != 1 {
				t.Errorf("Score() made %d model calls, want 1", mockLLM.calls())
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Score() error = %v, wantErr %v", err, tt.wantErr)
				}
				if result != nil {
					t.Errorf("Score() result = %+v, want nil on error", result)
				}
			} else {
				if err != nil {
					t.Fatalf("Score() unexpected error = %v", err)
				}
				if result.Score != tt.wantScore {
					t.Errorf("Score() score = %v, wantScore %v", result.Score, tt.wantScore)
				}
				if result.Reason != nil {
					t.Errorf("Score() reason = %q, want nil", *result.Reason)
				}
				if result.ProcessTime < 0 || math.IsInf(result.Seconds(), 0) || math.IsNaN(result.Seconds()) {
					t.Errorf("Score() process time = %v, want finite and non-negative", result.ProcessTime)
				}
				if result.Metric != metric {
					t.Errorf("Score() metric = %v, want the scoring metric", result.Metric)
				}
				if result.Record.Question != franceRecord.Question {
					t.Errorf("Score() record = %+v, want the scored record", result.Record)
				}
			}

			out := logs.String()
			if tt.wantLogged {
				if !strings.Contains(out, "level=ERROR") {
					t.Errorf("expected an error level log entry, got %q", out)
				}
				wantRaw := tt.llmResponse
				if wantRaw == "" {
					wantRaw = `response=""`
				}
				if !strings.Contains(out, wantRaw) {
					t.Errorf("log %q does not contain raw response %q", out, tt.llmResponse)
				}
			} else if out != "" {
				t.Errorf("expected no log output, got %q", out)
			}
		})
	}
}

func TestContextUtilization_EndToEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("parseable", func(t *testing.T) {
		mockLLM := &mockLLMGenerator{response: "1.0"}
		result, err := NewContextUtilization(mockLLM, WithLogger(logging.NoOpLogger{})).Score(ctx, franceRecord)
		if err != nil {
			t.Fatalf("Score() unexpected error = %v", err)
		}
		if result.Score != 1.0 {
			t.Errorf("Score() score = %v, want 1.0", result.Score)
		}
		if result.Reason != nil {
			t.Errorf("Score() reason = %v, want nil", result.Reason)
		}

		sent := mockLLM.prompts[0]
		for _, want := range []string{
			"question: What is the capital of France?",
			"context: Paris is the capital of France.",
			"answer: Paris",
		} {
			if !strings.Contains(sent, want) {
				t.Errorf("rendered prompt missing %q", want)
			}
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		logger, logs := newTestLogger()
		mockLLM := &mockLLMGenerator{response: "abc"}
		_, err := NewContextUtilization(mockLLM, WithLogger(logger)).Score(ctx, franceRecord)
		if !errors.Is(err, api.ErrUnexpectedResponse) {
			t.Fatalf("Score() error = %v, want ErrUnexpectedResponse", err)
		}
		if !strings.Contains(logs.String(), "abc") {
			t.Errorf("log %q does not contain abc", logs.String())
		}
	})

	t.Run("missing field", func(t *testing.T) {
		p, err := prompt.New("domain_utilization", "Rate context use for the given domain.",
			prompt.WithInputKeys("domain", "question", "context", "answer"))
		if err != nil {
			t.Fatalf("prompt.New() unexpected error = %v", err)
		}
		mockLLM := &mockLLMGenerator{response: "1.0"}
		_, err = NewContextUtilization(mockLLM, WithPrompt(p), WithLogger(logging.NoOpLogger{})).Score(ctx, franceRecord)
		if !errors.Is(err, api.ErrMissingField) {
			t.Fatalf("Score() error = %v, want ErrMissingField", err)
		}
		if mockLLM.calls() != 0 {
			t.Errorf("Score() made %d model calls, want 0", mockLLM.calls())
		}
	})

	t.Run("extra field satisfies custom prompt", func(t *testing.T) {
		p := prompt.Must(prompt.New("domain_utilization", "Rate context use for the given domain.",
			prompt.WithInputKeys("domain", "question", "context", "answer")))
		record := franceRecord
		record.Extra = map[string]string{"domain": "geography"}

		mockLLM := &mockLLMGenerator{response: "0.75"}
		result, err := NewContextUtilization(mockLLM, WithPrompt(p), WithLogger(logging.NoOpLogger{})).Score(ctx, record)
		if err != nil {
			t.Fatalf("Score() unexpected error = %v", err)
		}
		if result.Score != 0.75 {
			t.Errorf("Score() score = %v, want 0.75", result.Score)
		}
		if !strings.Contains(mockLLM.prompts[0], "domain: geography") {
			t.Errorf("rendered prompt missing extra field: %q", mockLLM.prompts[0])
		}
	})
}

func TestContextUtilization_Name(t *testing.T) {
	a := NewContextUtilization(&mockLLMGenerator{})
	b := NewContextUtilization(&mockLLMGenerator{response: "0.1"}, WithLogger(logging.NoOpLogger{}))

	for i := 0; i < 3; i++ {
		if a.Name() != "Context Utilization" || b.Name() != "Context Utilization" {
			t.Fatalf("Name() = %q / %q, want Context Utilization", a.Name(), b.Name())
		}
	}
	if a.Type() != api.NonBinary {
		t.Errorf("Type() = %v, want non-binary", a.Type())
	}
}

func TestContextUtilization_Reason(t *testing.T) {
	metric := NewContextUtilization(&mockLLMGenerator{response: "1.0"})
	for _, score := range []float64{0, 0.5, 1} {
		reason, err := metric.Reason(context.Background(), franceRecord, score)
		if !errors.Is(err, api.ErrNotImplemented) {
			t.Errorf("Reason(%v) error = %v, want ErrNotImplemented", score, err)
		}
		if reason != "" {
			t.Errorf("Reason(%v) = %q, want empty", score, reason)
		}
	}
}

func TestContextUtilization_Deterministic(t *testing.T) {
	ctx := context.Background()
	metric := NewContextUtilization(&mockLLMGenerator{response: "0.64"}, WithLogger(logging.NoOpLogger{}))

	first, err := metric.Score(ctx, franceRecord)
	if err != nil {
		t.Fatalf("Score() unexpected error = %v", err)
	}
	second, err := metric.Score(ctx, franceRecord)
	if err != nil {
		t.Fatalf("Score() unexpected error = %v", err)
	}
	if first.Score != second.Score {
		t.Errorf("Score() not stable: %v then %v", first.Score, second.Score)
	}
	if first == second {
		t.Error("Score() should return a fresh result per call")
	}
}

func TestContextUtilization_NoLLM(t *testing.T) {
	_, err := NewContextUtilization(nil).Score(context.Background(), franceRecord)
	if !errors.Is(err, api.ErrNoLLM) {
		t.Errorf("Score() error = %v, want ErrNoLLM", err)
	}
}

func TestContextUtilization_Concurrent(t *testing.T) {
	ctx := context.Background()
	mockLLM := &mockLLMGenerator{response: "0.3"}
	metric := NewContextUtilization(mockLLM, WithLogger(logging.NoOpLogger{}))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := metric.Score(ctx, franceRecord)
			if err != nil {
				errs <- err
				return
			}
			if result.Score != 0.3 {
				errs <- fmt.Errorf("score = %v, want 0.3", result.Score)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	if mockLLM.calls() != 16 {
		t.Errorf("model calls = %d, want 16", mockLLM.calls())
	}
}
