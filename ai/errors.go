package ai

import "errors"

var (
	// ErrSchemaViolation indicates the service returned JSON that does not
	// conform to the expected response schema.
	ErrSchemaViolation = errors.New("response violates schema")

	// ErrNoResponse indicates the service returned no usable choices.
	ErrNoResponse = errors.New("no response from model")

	// ErrInvalidMaxAttempts is returned when a retry budget is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
