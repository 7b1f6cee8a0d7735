// Package types provides type definitions for structured data used throughout the resume-structurer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxSkills is the upper bound on the number of skills kept in a ResumeDocument.
const MaxSkills = 15

// ResumeDocument is the structured form of a free-text resume.
type ResumeDocument struct {
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Location   string            `json:"location"`
	LinkedIn   string            `json:"linkedin,omitempty"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience" validate:"dive"`
	Education  []EducationEntry  `json:"education" validate:"dive"`
	Skills     []string          `json:"skills" validate:"max=15,dive,required"`
}

// ExperienceEntry is one job held by the candidate, in document order.
type ExperienceEntry struct {
	Title            string   `json:"title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	Duration         string   `json:"duration" validate:"required"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities" validate:"dive,required"`
}

// EducationEntry is one degree or qualification.
type EducationEntry struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Year        string `json:"year" validate:"required"`
}

// NewResumeDocument returns a document whose list fields are empty but non-nil,
// so they serialize as [] rather than null.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []string{},
	}
}

// HasLinkedIn reports whether a LinkedIn profile reference was found.
func (d *ResumeDocument) HasLinkedIn() bool {
	return d.LinkedIn != ""
}

// Validate validates the ResumeDocument using the validator.
func (d *ResumeDocument) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}
