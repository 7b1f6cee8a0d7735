package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested resume file
type Metadata struct {
	Filename  string `json:"filename"`
	Format    Format `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the original bytes
	Bytes     int    `json:"bytes"`
	Chars     int    `json:"chars"` // rune count of the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, data []byte, cleaned string) *Metadata {
	return &Metadata{
		Filename:  filename,
		Format:    DetectFormat(filename),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ComputeHash(data),
		Bytes:     len(data),
		Chars:     utf8.RuneCountInString(cleaned),
	}
}

// ComputeHash returns the hex SHA256 digest of data
func ComputeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
