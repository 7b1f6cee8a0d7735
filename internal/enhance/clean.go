package enhance

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-structurer/internal/ingestion"
)

var (
	preamblePattern      = regexp.MustCompile(`(?i)^(certainly|sure|of course|absolutely)\b`)
	heresPattern         = regexp.MustCompile(`(?i)^here(?:'s| is| are)\b.*:\s*$`)
	versionHeaderPattern = regexp.MustCompile(`(?i)\b(enhanced|optimized|improved|revised|rewritten|updated|refined|version)\b.*:\s*$`)
	headingPattern       = regexp.MustCompile(`^#{1,6}\s+`)
	boldLabelPattern     = regexp.MustCompile(`^\*\*[^*]+\*\*:?\s*`)
	separatorPattern     = regexp.MustCompile(`^[-*_]{3,}$`)
	noteSuffixPattern    = regexp.MustCompile(`(?i)\s*\([^)]*\b(ats|optimized|enhanced)\b[^)]*\)\s*$`)
)

// SanitizeForModel prepares user content for a prompt.
func SanitizeForModel(s string) string {
	s = ingestion.Sanitize(s)
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	return strings.TrimSpace(s)
}

// CleanResponse strips conversational framing and markdown decoration a model
// tends to wrap around rewritten text.
func CleanResponse(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	started := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if started {
				kept = append(kept, "")
			}
			continue
		}
		if separatorPattern.MatchString(trimmed) {
			continue
		}
		if !started && isPreamble(trimmed) {
			continue
		}
		if headingPattern.MatchString(trimmed) {
			continue
		}
		trimmed = boldLabelPattern.ReplaceAllString(trimmed, "")
		trimmed = noteSuffixPattern.ReplaceAllString(trimmed, "")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
		started = true
	}

	out := strings.TrimSpace(strings.Join(kept, "\n"))
	return trimQuotes(out)
}

func isPreamble(line string) bool {
	if preamblePattern.MatchString(line) || heresPattern.MatchString(line) {
		return true
	}
	return strings.HasSuffix(line, ":") && versionHeaderPattern.MatchString(line)
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
