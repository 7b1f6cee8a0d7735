package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-structurer/internal/types"
)

// Source formats recorded with a parse result
const (
	FormatText = "text"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatHTML = "html"
)

// List pagination bounds
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ParsedResume is a stored parse result
type ParsedResume struct {
	ID            uuid.UUID             `json:"id"`
	SourceName    string                `json:"source_name"`
	Format        string                `json:"format"`
	ContentHash   string                `json:"content_hash"`
	Document      *types.ResumeDocument `json:"document"`
	LowConfidence bool                  `json:"low_confidence"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ParsedResumeSummary is the list view of a stored parse result
type ParsedResumeSummary struct {
	ID            uuid.UUID `json:"id"`
	SourceName    string    `json:"source_name"`
	Format        string    `json:"format"`
	Name          string    `json:"name"`
	LowConfidence bool      `json:"low_confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// normalizePage clamps list pagination to sane bounds
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
