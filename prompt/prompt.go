// Package prompt holds the parameterized instructions sent to judge models.
//
// A Prompt declares the record fields it reads (input keys) and the value it asks
// the model to produce (output key). Rendering checks every declared key against
// the supplied fields before substitution so a missing field fails fast with
// api.ErrMissingField instead of a generic template error.
package prompt

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/datar-psa/ragmetrics/api"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Example is a worked example shown to the model before the record under evaluation
type Example struct {
	// Inputs maps input keys to example values
	Inputs map[string]string
	// Output is the expected model answer for the example
	Output string
}

// Options configures Prompt creation
type Options struct {
	InputKeys []string
	OutputKey string
	Examples  []Example
}

// WithInputKeys sets the record fields the prompt reads, in display order
func WithInputKeys(keys ...string) func(*Options) {
	return func(opts *Options) {
		opts.InputKeys = keys
	}
}

// WithOutputKey sets the label of the value the model must produce
func WithOutputKey(key string) func(*Options) {
	return func(opts *Options) {
		opts.OutputKey = key
	}
}

// WithExamples sets worked examples included ahead of the record
func WithExamples(examples ...Example) func(*Options) {
	return func(opts *Options) {
		opts.Examples = examples
	}
}

// Prompt is an immutable, parsed prompt template. It is safe for concurrent use.
type Prompt struct {
	name        string
	instruction string
	inputKeys   []string
	outputKey   string
	examples    []Example
	text        string
	tmpl        *template.Template
}

// New builds and parses a prompt template.
// Defaults: input keys question, context, answer; output key score.
func New(name, instruction string, opts ...func(*Options)) (*Prompt, error) {
	options := &Options{
		InputKeys: []string{"question", "context", "answer"},
		OutputKey: "score",
	}
	for _, opt := range opts {
		opt(options)
	}

	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("prompt %q: instruction is required", name)
	}
	if len(options.InputKeys) == 0 {
		return nil, fmt.Errorf("prompt %q: at least one input key is required", name)
	}
	seen := make(map[string]bool, len(options.InputKeys))
	for _, k := range options.InputKeys {
		if !keyPattern.MatchString(k) {
			return nil, fmt.Errorf("prompt %q: invalid input key %q", name, k)
		}
		if seen[k] {
			return nil, fmt.Errorf("prompt %q: duplicate input key %q", name, k)
		}
		seen[k] = true
	}
	if !keyPattern.MatchString(options.OutputKey) {
		return nil, fmt.Errorf("prompt %q: invalid output key %q", name, options.OutputKey)
	}

	p := &Prompt{
		name:        name,
		instruction: instruction,
		inputKeys:   append([]string(nil), options.InputKeys...),
		outputKey:   options.OutputKey,
		examples:    append([]Example(nil), options.Examples...),
	}
	p.text = p.build()

	tmpl, err := template.New(name).Option("missingkey=error").Parse(p.text)
	if err != nil {
		return nil, fmt.Errorf("prompt %q: %w", name, err)
	}
	p.tmpl = tmpl
	return p, nil
}

// Must is like New but panics on error. Intended for package level built-ins.
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the prompt name
func (p *Prompt) Name() string { return p.name }

// InputKeys returns the record fields the prompt requires
func (p *Prompt) InputKeys() []string { return append([]string(nil), p.inputKeys...) }

// OutputKey returns the label of the requested model output
func (p *Prompt) OutputKey() string { return p.outputKey }

// String returns the unrendered template text
func (p *Prompt) String() string { return p.text }

// Render substitutes fields into the template.
// Every input key must be present in fields, empty values are allowed.
func (p *Prompt) Render(fields map[string]string) (string, error) {
	for _, k := range p.inputKeys {
		if _, ok := fields[k]; !ok {
			return "", fmt.Errorf("%w: %q required by prompt %q", api.ErrMissingField, k, p.name)
		}
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", p.name, err)
	}
	return buf.String(), nil
}

func (p *Prompt) build() string {
	var b strings.Builder
	b.WriteString(escape(strings.TrimSpace(p.instruction)))
	b.WriteString("\n\n")

	if len(p.examples) > 0 {
		b.WriteString("Examples:\n\n")
		for _, ex := range p.examples {
			for _, k := range p.inputKeys {
				fmt.Fprintf(&b, "%s: %s\n", k, escape(ex.Inputs[k]))
			}
			fmt.Fprintf(&b, "%s: %s\n\n", p.outputKey, escape(ex.Output))
		}
		b.WriteString("Now evaluate the following:\n\n")
	}

	for _, k := range p.inputKeys {
		fmt.Fprintf(&b, "%s: {{.%s}}\n", k, k)
	}
	fmt.Fprintf(&b, "%s:", p.outputKey)
	return b.String()
}

// escape keeps static text from being read as template actions
func escape(s string) string {
	return strings.ReplaceAll(s, "{{", `{{"{{"}}`)
}
