package parsing

import (
	"strings"
	"unicode/utf8"
)

// section identifies which part of a resume a line belongs to.
type section int

const (
	sectionHeader section = iota
	sectionSummary
	sectionExperience
	sectionEducation
	sectionSkills
)

func (s section) String() string {
	switch s {
	case sectionSummary:
		return "summary"
	case sectionExperience:
		return "experience"
	case sectionEducation:
		return "education"
	case sectionSkills:
		return "skills"
	default:
		return "header"
	}
}

// keywordSet pairs a section with the lowercase keywords that open it.
type keywordSet struct {
	section section
	words   []string
}

// segments holds the content lines buffered under each section.
// Header lines are not buffered; they only feed contact extraction.
type segments struct {
	summary    []string
	experience []string
	education  []string
	skills     []string
}

func (s *segments) add(sec section, line string) {
	switch sec {
	case sectionSummary:
		s.summary = append(s.summary, line)
	case sectionExperience:
		s.experience = append(s.experience, line)
	case sectionEducation:
		s.education = append(s.education, line)
	case sectionSkills:
		s.skills = append(s.skills, line)
	}
}

// SplitLines normalizes line endings to \n and returns the trimmed,
// non-empty lines of text in order.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// classify reports the section a keyword line opens. Sets are checked in
// order and the first matching keyword wins.
func (p *Parser) classify(line string) (section, bool) {
	if p.opts.MaxKeywordLineLength > 0 && runeLen(line) >= p.opts.MaxKeywordLineLength {
		return sectionHeader, false
	}
	lower := strings.ToLower(line)
	for _, set := range p.keywordSets {
		for _, word := range set.words {
			if strings.Contains(lower, word) {
				return set.section, true
			}
		}
	}
	return sectionHeader, false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(strings.TrimSpace(w)))
	}
	return out
}
