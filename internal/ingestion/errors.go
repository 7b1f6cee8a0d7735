package ingestion

import "fmt"

// UnsupportedFormatError is returned for file types that cannot be turned into text
type UnsupportedFormatError struct {
	Extension string
	Message   string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unsupported file format %q: %s", e.Extension, e.Message)
	}
	return fmt.Sprintf("unsupported file format %q", e.Extension)
}

// ExtractionError represents a failure to read text out of a supported format
type ExtractionError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
