// Package enhance rewrites individual resume fields with a language model.
package enhance

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxContentLength bounds the text of a single enhancement request, in bytes.
const MaxContentLength = 20000

// FieldType names the kind of resume content being rewritten.
type FieldType string

const (
	FieldSummary      FieldType = "summary"
	FieldDescription  FieldType = "description"
	FieldAchievements FieldType = "achievements"
	FieldTitle        FieldType = "title"
	FieldSkills       FieldType = "skills"
	FieldGeneral      FieldType = "general"
)

// ParseFieldType maps a field name to a FieldType. Unknown names map to FieldGeneral.
func ParseFieldType(s string) FieldType {
	switch ft := FieldType(strings.ToLower(strings.TrimSpace(s))); ft {
	case FieldSummary, FieldDescription, FieldAchievements, FieldTitle, FieldSkills:
		return ft
	default:
		return FieldGeneral
	}
}

// Context narrows a rewrite to the candidate's industry and target role.
type Context struct {
	Industry   string `json:"industry,omitempty"`
	TargetRole string `json:"target_role,omitempty"`
}

// Request asks for one field to be rewritten.
type Request struct {
	FieldType FieldType `json:"field_type" validate:"required"`
	Content   string    `json:"content" validate:"required,max=20000"`
	Context   Context   `json:"context"`
}

// Response carries the rewritten content next to the original.
type Response struct {
	EnhancedContent string       `json:"enhanced_content"`
	OriginalContent string       `json:"original_content"`
	FieldType       FieldType    `json:"field_type"`
	StyleChecks     *StyleChecks `json:"style_checks,omitempty"`
}

// Validate validates the Request using the validator.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return &ValidationError{Field: "content", Message: "field type and content are required"}
	}
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{Field: fieldErrs[0].Field(), Message: fieldErrs[0].Tag(), Cause: err}
		}
		return &ValidationError{Message: "invalid request", Cause: err}
	}
	return nil
}

func (c Context) templateData() map[string]string {
	industry := strings.TrimSpace(c.Industry)
	if industry == "" {
		industry = "their field"
	}
	role := strings.TrimSpace(c.TargetRole)
	if role == "" {
		role = "similar"
	}
	return map[string]string{"Industry": industry, "TargetRole": role}
}
