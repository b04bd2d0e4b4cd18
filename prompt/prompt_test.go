package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/datar-psa/ragmetrics/api"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		opts        []func(*Options)
		wantErr     bool
	}{
		{
			name:        "defaults",
			instruction: "Rate it.",
		},
		{
			name:        "empty instruction",
			instruction: "   ",
			wantErr:     true,
		},
		{
			name:        "no input keys",
			instruction: "Rate it.",
			opts:        []func(*Options){WithInputKeys()},
			wantErr:     true,
		},
		{
			name:        "invalid input key",
			instruction: "Rate it.",
			opts:        []func(*Options){WithInputKeys("ground-truth")},
			wantErr:     true,
		},
		{
			name:        "duplicate input key",
			instruction: "Rate it.",
			opts:        []func(*Options){WithInputKeys("question", "question")},
			wantErr:     true,
		},
		{
			name:        "invalid output key",
			instruction: "Rate it.",
			opts:        []func(*Options){WithOutputKey("")},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("test", tt.instruction, tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error = %v", err)
			}
			if p.OutputKey() != "score" {
				t.Errorf("OutputKey() = %q, want score", p.OutputKey())
			}
			if got := strings.Join(p.InputKeys(), ","); got != "question,context,answer" {
				t.Errorf("InputKeys() = %q, want question,context,answer", got)
			}
		})
	}
}

func TestPrompt_Render(t *testing.T) {
	p, err := New("qa", "Rate the answer.", WithInputKeys("question", "answer"))
	if err != nil {
		t.Fatalf("New() unexpected error = %v", err)
	}

	got, err := p.Render(map[string]string{
		"question": "What is 2+2?",
		"answer":   "{{4}}",
		"unused":   "ignored",
	})
	if err != nil {
		t.Fatalf("Render() unexpected error = %v", err)
	}

	want := "Rate the answer.\n\nquestion: What is 2+2?\nanswer: {{4}}\nscore:"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestPrompt_RenderEmptyValues(t *testing.T) {
	p := ContextUtilization()
	got, err := p.Render(map[string]string{"question": "", "context": "", "answer": ""})
	if err != nil {
		t.Fatalf("Render() unexpected error = %v", err)
	}
	if !strings.HasSuffix(got, "question: \ncontext: \nanswer: \nscore:") {
		t.Errorf("Render() tail = %q", got[len(got)-60:])
	}
}

func TestPrompt_RenderMissingField(t *testing.T) {
	p := ContextUtilization()
	_, err := p.Render(map[string]string{"question": "q", "answer": "a"})
	if !errors.Is(err, api.ErrMissingField) {
		t.Fatalf("Render() error = %v, want ErrMissingField", err)
	}
	if !strings.Contains(err.Error(), `"context"`) {
		t.Errorf("Render() error %q should name the missing field", err)
	}
}

func TestPrompt_StringEscapesStaticText(t *testing.T) {
	p, err := New("braces", "Use {{ and }} literally.",
		WithInputKeys("question"),
		WithExamples(Example{Inputs: map[string]string{"question": "{{.secret}}"}, Output: "0.5"}),
	)
	if err != nil {
		t.Fatalf("New() unexpected error = %v", err)
	}

	got, err := p.Render(map[string]string{"question": "real"})
	if err != nil {
		t.Fatalf("Render() unexpected error = %v", err)
	}
	if !strings.HasPrefix(got, "Use {{ and }} literally.") {
		t.Errorf("Render() = %q, instruction braces not preserved", got)
	}
	if !strings.Contains(got, "question: {{.secret}}\nscore: 0.5") {
		t.Errorf("Render() = %q, example not preserved", got)
	}
	if !strings.Contains(got, "Now evaluate the following:\n\nquestion: real\nscore:") {
		t.Errorf("Render() = %q, record not rendered", got)
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		prompt *Prompt
		name   string
		keys   string
	}{
		{ContextUtilization(), "context_utilization", "question,context,answer"},
		{ContextRelevancy(), "context_relevancy", "question,context"},
		{ResponseRelevancy(), "response_relevancy", "question,answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prompt.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", tt.prompt.Name(), tt.name)
			}
			if got := strings.Join(tt.prompt.InputKeys(), ","); got != tt.keys {
				t.Errorf("InputKeys() = %q, want %q", got, tt.keys)
			}
			if !strings.HasSuffix(tt.prompt.String(), "score:") {
				t.Errorf("String() should end with the output key")
			}
		})
	}
}
