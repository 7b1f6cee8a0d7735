package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resumeSchemaPath = filepath.Join("..", "..", "schemas", "resume_document.schema.json")

func TestValidateJSON_ValidJSON(t *testing.T) {
	err := ValidateJSON(resumeSchemaPath, filepath.Join("testdata", "valid_resume.json"))
	assert.NoError(t, err)
}

func TestValidateJSON_MissingFields(t *testing.T) {
	err := ValidateJSON(resumeSchemaPath, filepath.Join("testdata", "missing_fields.json"))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "summary")
}

func TestValidateJSON_WrongType(t *testing.T) {
	err := ValidateJSON(resumeSchemaPath, filepath.Join("testdata", "type_mismatch.json"))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "skills")
	assert.Contains(t, fields, "experience.0.responsibilities")
}

func TestValidateJSON_FileNotFound(t *testing.T) {
	err := ValidateJSON(resumeSchemaPath, filepath.Join("testdata", "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")

	err = ValidateJSON(filepath.Join("testdata", "nope.schema.json"), filepath.Join("testdata", "valid_resume.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateDocumentJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "valid_resume.json"))
	require.NoError(t, err)
	assert.NoError(t, ValidateDocumentJSON(data))

	err = ValidateDocumentJSON([]byte(`{"name": "Jane"}`))
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *types.ResumeDocument)
		wantErr bool
	}{
		{
			name:    "empty document",
			mutate:  func(_ *types.ResumeDocument) {},
			wantErr: false,
		},
		{
			name: "with linkedin and entries",
			mutate: func(d *types.ResumeDocument) {
				d.LinkedIn = "linkedin.com/in/jane"
				d.Experience = []types.ExperienceEntry{{Title: "Engineer", Company: "Acme", Duration: "2020", Responsibilities: []string{}}}
				d.Education = []types.EducationEntry{{Degree: "BSc", Institution: "MIT", Year: "2015"}}
			},
			wantErr: false,
		},
		{
			name: "too many skills",
			mutate: func(d *types.ResumeDocument) {
				for i := 0; i < types.MaxSkills+1; i++ {
					d.Skills = append(d.Skills, fmt.Sprintf("Skill%d", i))
				}
			},
			wantErr: true,
		},
		{
			name: "nil responsibilities serialize as null",
			mutate: func(d *types.ResumeDocument) {
				d.Experience = []types.ExperienceEntry{{Title: "Engineer", Company: "Acme", Duration: "2020"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := types.NewResumeDocument()
			tt.mutate(doc)
			err := ValidateDocument(doc)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "skills", Message: "Array must have at most 15 items"}}}
	assert.Contains(t, err.Error(), "1. skills: Array must have at most 15 items")

	data, jsonErr := json.Marshal(err.Errors)
	require.NoError(t, jsonErr)
	assert.JSONEq(t, `[{"field":"skills","message":"Array must have at most 15 items"}]`, string(data))
}

func TestResolveSchemaPath(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(filepath.Join("schemas", "resume_document.schema.json")))
	assert.Empty(t, ResolveSchemaPath("does-not-exist.schema.json"))
}
