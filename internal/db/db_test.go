package db

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-structurer/internal/types"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, DefaultListLimit, 0},
		{"negative", -5, -1, DefaultListLimit, 0},
		{"within bounds", 10, 20, 10, 20},
		{"capped", 500, 3, MaxListLimit, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := normalizePage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestParsedResume_JSON(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Name = "Jane Doe"
	r := ParsedResume{
		ID:          uuid.New(),
		SourceName:  "jane.pdf",
		Format:      FormatPDF,
		ContentHash: "abc",
		Document:    doc,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "jane.pdf", m["source_name"])
	assert.Equal(t, "pdf", m["format"])
	assert.Equal(t, false, m["low_confidence"])
	document, ok := m["document"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", document["name"])
}
