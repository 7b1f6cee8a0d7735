// Package ingestion turns uploaded resume files into clean plain text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpace        = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	excessBlankLines  = regexp.MustCompile(`\n\n\n+`)
	controlChars      = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F-\x9F]`)
	altBulletPrefixes = []string{"●", "▪", "◦", "·", "‣", "■", "○"}
)

var typographicReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`,
	"‘", "'", "’", "'", "‚", "'",
	"…", "...",
	"\uFEFF", "",
)

// Sanitize strips control characters (keeping newlines and tabs) and
// replaces typographic quotes and ellipses with ASCII equivalents.
func Sanitize(content string) string {
	content = controlChars.ReplaceAllString(content, "")
	return typographicReplacer.Replace(content)
}

// CleanText cleans and normalizes extracted text while preserving its line structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = Sanitize(content)

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of inline whitespace and rewrites uncommon bullet glyphs to "•".
func cleanLine(line string) string {
	line = strings.TrimSpace(innerSpace.ReplaceAllString(line, " "))
	for _, prefix := range altBulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return "• " + strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

// IngestFromFile reads a resume file, extracts and cleans its text, and returns it with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	return IngestBytes(filepath.Base(path), content)
}

// IngestBytes extracts and cleans the text of an in-memory resume file
func IngestBytes(filename string, data []byte) (string, *Metadata, error) {
	raw, err := ExtractText(filename, data)
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(raw)
	metadata := NewMetadata(filename, data, cleaned)
	return cleaned, metadata, nil
}

// WriteOutput writes the cleaned text and metadata next to each other in outDir
func WriteOutput(outDir string, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(metadata.Filename, filepath.Ext(metadata.Filename))
	if base == "" {
		base = "resume"
	}

	cleanedPath := filepath.Join(outDir, base+".cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaPath := filepath.Join(outDir, base+".meta.json")
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
