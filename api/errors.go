package api

import "errors"

var (
	// ErrUnexpectedResponse is returned when the LLM response cannot be parsed as a score
	ErrUnexpectedResponse = errors.New("unexpected response from the LLM")
	// ErrNotImplemented is returned by capabilities a metric does not support
	ErrNotImplemented = errors.New("not implemented")
	// ErrMissingField is returned when a record lacks a field required by a prompt template
	ErrMissingField = errors.New("missing template field")
	// ErrNoGroundTruth is returned when a ground truth is required but not provided
	ErrNoGroundTruth = errors.New("ground truth is required for this metric")
	// ErrNoLLM is returned when a metric needing an LLM generator has none
	ErrNoLLM = errors.New("LLM generator is required")
	// ErrLLMGenerationFailed is returned by providers when the model returns no usable text
	ErrLLMGenerationFailed = errors.New("LLM generation failed")
)
