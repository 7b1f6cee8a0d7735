package parsing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a caller hands the parser no input at all.
// It is distinct from text that simply yields no matches, which is never an error.
var ErrInvalidInput = errors.New("invalid input: resume text is required")

// ConfigError represents invalid parser options
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid parser options: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid parser options: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ReadError represents a failure reading resume text from a source
type ReadError struct {
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("read error: %s", e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
