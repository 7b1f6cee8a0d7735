package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	data := []byte("Jane Doe\njane@x.com")
	metadata := NewMetadata("Jane_Resume.DOCX", data, "Jane Doe\njane@x.com")

	assert.Equal(t, "Jane_Resume.DOCX", metadata.Filename)
	assert.Equal(t, FormatDOCX, metadata.Format)
	assert.Equal(t, ComputeHash(data), metadata.Hash)
	assert.Equal(t, len(data), metadata.Bytes)
	assert.Equal(t, 19, metadata.Chars)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err, "timestamp should be RFC3339")
}

func TestComputeHash(t *testing.T) {
	// sha256 of the empty input
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ComputeHash(nil))
	assert.Len(t, ComputeHash([]byte("x")), 64)
}

func TestMetadata_ToJSON(t *testing.T) {
	metadata := &Metadata{
		Filename:  "resume.pdf",
		Format:    FormatPDF,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Bytes:     10,
		Chars:     8,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &raw))
	assert.Equal(t, "resume.pdf", raw["filename"])
	assert.Equal(t, "pdf", raw["format"])
	assert.Equal(t, "abcd1234", raw["hash"])
	assert.Equal(t, float64(10), raw["bytes"])
}
