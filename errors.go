package ragmetrics

import "github.com/datar-psa/ragmetrics/api"

var (
	// ErrUnexpectedResponse is returned when the LLM response cannot be parsed as a score
	ErrUnexpectedResponse = api.ErrUnexpectedResponse
	// ErrNotImplemented is returned by capabilities a metric does not support
	ErrNotImplemented = api.ErrNotImplemented
	// ErrMissingField is returned when a record lacks a field required by a prompt template
	ErrMissingField = api.ErrMissingField
	// ErrNoGroundTruth is returned when a ground truth is required but not provided
	ErrNoGroundTruth = api.ErrNoGroundTruth
	// ErrNoLLM is returned when a metric needing an LLM generator has none
	ErrNoLLM = api.ErrNoLLM
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = api.ErrLLMGenerationFailed
)
