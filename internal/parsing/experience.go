package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

const datePattern = `(?:` + monthPattern + `\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4}|` + monthPattern + `)`

var (
	dateTokenPattern = regexp.MustCompile(`(?i)\b` + datePattern + `\b`)
	dateRangePattern = regexp.MustCompile(`(?i)\b` + datePattern + `\s*(?:-|–|—|\bto\b)\s*(?:` + datePattern + `|present|current|now)\b`)
	headerSeparators = regexp.MustCompile(`[-–—|]`)
)

var responsibilityPrefixes = []string{"responsible", "managed", "developed"}

// hasBulletPrefix reports whether line starts with a list marker.
func hasBulletPrefix(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "•-* "))
}

func isJobHeaderCandidate(line string) bool {
	if runeLen(line) <= 5 || hasBulletPrefix(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, prefix := range responsibilityPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

// extractDuration returns the first date range in line, or the first date token.
func extractDuration(line string) string {
	if r := dateRangePattern.FindString(line); r != "" {
		return r
	}
	return dateTokenPattern.FindString(line)
}

// parseExperience turns the experience buffer into entries in document order.
func (p *Parser) parseExperience(lines []string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	var current *types.ExperienceEntry

	for i, line := range lines {
		if isJobHeaderCandidate(line) && (i == 0 || dateTokenPattern.MatchString(line)) {
			if current != nil {
				entries = append(entries, *current)
			}
			current = p.newExperienceEntry(line)
			continue
		}
		if current != nil && runeLen(line) > 10 {
			// rule lines such as "-----" or "• • •" strip to nothing
			if item := stripBullet(line); item != "" {
				current.Responsibilities = append(current.Responsibilities, item)
			}
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}

	if len(entries) == 0 && len(lines) > 0 && p.opts.EmptySections == EmptySectionsPlaceholder {
		entries = append(entries, p.fallbackExperience(lines))
	}
	return entries
}

func (p *Parser) newExperienceEntry(header string) *types.ExperienceEntry {
	d := p.opts.Defaults
	entry := &types.ExperienceEntry{
		Title:            d.JobTitle,
		Company:          d.Company,
		Duration:         d.Duration,
		Responsibilities: []string{},
	}

	parts := headerSeparators.Split(header, -1)
	if title := strings.TrimSpace(parts[0]); title != "" {
		entry.Title = title
	}
	if len(parts) > 1 {
		if company := strings.TrimSpace(parts[1]); company != "" {
			entry.Company = company
		}
	}
	if duration := extractDuration(header); duration != "" {
		entry.Duration = duration
	}
	return entry
}

// fallbackExperience keeps unstructured experience text as a single entry.
func (p *Parser) fallbackExperience(lines []string) types.ExperienceEntry {
	joined := []rune(strings.Join(lines, " "))
	if len(joined) > fallbackDescriptionRunes {
		joined = joined[:fallbackDescriptionRunes]
	}

	n := min(len(lines), fallbackResponsibilities)
	responsibilities := make([]string, n)
	copy(responsibilities, lines[:n])

	return types.ExperienceEntry{
		Title:            p.opts.Defaults.FallbackTitle,
		Company:          p.opts.Defaults.Company,
		Duration:         p.opts.Defaults.FallbackDuration,
		Description:      strings.TrimSpace(string(joined)),
		Responsibilities: responsibilities,
	}
}
