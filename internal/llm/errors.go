package llm

import "errors"

var (
	// ErrOllamaUnavailable means the judge endpoint could not be reached.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout means every attempt ran past its deadline.
	ErrTimeout = errors.New("llm request timed out")

	// ErrModelNotFound means Ollama does not have the configured model
	// pulled. Retrying cannot help.
	ErrModelNotFound = errors.New("llm model not found")

	// ErrEmptyResponse means the model answered with no text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrInvalidOutput means a reply could not be decoded into the shape
	// the caller asked for.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted wraps the last failure once no attempt succeeded.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
