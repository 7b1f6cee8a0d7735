package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(EnhanceFile, "system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "expert resume writer")
}

func TestEnhanceFile_HasEveryField(t *testing.T) {
	for _, key := range []string{"system", "summary", "description", "achievements", "title", "skills", "general"} {
		t.Run(key, func(t *testing.T) {
			assert.True(t, Has(EnhanceFile, key))
			if key != "system" {
				assert.Contains(t, MustGet(EnhanceFile, key), "{{.Content}}")
			}
		})
	}
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
	assert.False(t, Has("nonexistent.json", "some-key"))
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(EnhanceFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet(EnhanceFile, "missing")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "replaces every occurrence",
			template: "{{.Role}} at {{.Company}}; {{.Role}}",
			data:     map[string]string{"Role": "Engineer", "Company": "Acme"},
			expected: "Engineer at Acme; Engineer",
		},
		{
			name:     "missing value left in place",
			template: "Hello {{.Name}}",
			data:     map[string]string{},
			expected: "Hello {{.Name}}",
		},
		{
			name:     "values are not re-expanded",
			template: "{{.A}} {{.B}}",
			data:     map[string]string{"A": "{{.B}}", "B": "b"},
			expected: "{{.B}} b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	prompt, err := Render(EnhanceFile, "title", map[string]string{
		"Content":  "sw eng",
		"Industry": "fintech",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "sw eng")
	assert.Contains(t, prompt, "fintech")
	assert.NotContains(t, prompt, "{{.Content}}")
}
