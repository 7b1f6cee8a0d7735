//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeDocument_SerializesEmptyLists(t *testing.T) {
	doc := NewResumeDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, []any{}, raw["experience"])
	assert.Equal(t, []any{}, raw["education"])
	assert.Equal(t, []any{}, raw["skills"])
	_, hasLinkedIn := raw["linkedin"]
	assert.False(t, hasLinkedIn, "linkedin is omitted when empty")
}

func TestResumeDocument_LinkedInSerialized(t *testing.T) {
	doc := NewResumeDocument()
	doc.LinkedIn = "linkedin.com/in/janedoe"

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"linkedin":"linkedin.com/in/janedoe"`)
	assert.True(t, doc.HasLinkedIn())
}

func TestResumeDocument_Validate(t *testing.T) {
	manySkills := make([]string, MaxSkills+1)
	for i := range manySkills {
		manySkills[i] = fmt.Sprintf("Skill%d", i)
	}

	tests := []struct {
		name    string
		mutate  func(d *ResumeDocument)
		wantErr bool
	}{
		{
			name:    "empty document is valid",
			mutate:  func(_ *ResumeDocument) {},
			wantErr: false,
		},
		{
			name: "complete document",
			mutate: func(d *ResumeDocument) {
				d.Name = "Jane Doe"
				d.Experience = []ExperienceEntry{{Title: "Engineer", Company: "Acme", Duration: "2020 - Present"}}
				d.Education = []EducationEntry{{Degree: "BSc", Institution: "MIT", Year: "2016"}}
				d.Skills = []string{"Go", "SQL"}
			},
			wantErr: false,
		},
		{
			name: "too many skills",
			mutate: func(d *ResumeDocument) {
				d.Skills = manySkills
			},
			wantErr: true,
		},
		{
			name: "blank skill",
			mutate: func(d *ResumeDocument) {
				d.Skills = []string{"Go", ""}
			},
			wantErr: true,
		},
		{
			name: "experience without company",
			mutate: func(d *ResumeDocument) {
				d.Experience = []ExperienceEntry{{Title: "Engineer", Duration: "2020"}}
			},
			wantErr: true,
		},
		{
			name: "blank responsibility",
			mutate: func(d *ResumeDocument) {
				d.Experience = []ExperienceEntry{{Title: "Engineer", Company: "Acme", Duration: "2020", Responsibilities: []string{""}}}
			},
			wantErr: true,
		},
		{
			name: "education without year",
			mutate: func(d *ResumeDocument) {
				d.Education = []EducationEntry{{Degree: "BSc", Institution: "MIT"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewResumeDocument()
			tt.mutate(doc)
			err := doc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
