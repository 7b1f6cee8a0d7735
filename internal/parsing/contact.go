package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/\S+`)
	digitRunPattern = regexp.MustCompile(`\d{3,}`)
)

// scanContact fills any contact field that is still empty from line.
func scanContact(doc *types.ResumeDocument, line string) {
	if doc.Email == "" {
		doc.Email = emailPattern.FindString(line)
	}
	if doc.Phone == "" {
		doc.Phone = phonePattern.FindString(line)
	}
	if doc.LinkedIn == "" {
		doc.LinkedIn = linkedInPattern.FindString(line)
	}
}

// isNameCandidate reports whether a header line could be the candidate's name.
func isNameCandidate(line string) bool {
	if runeLen(line) <= 2 {
		return false
	}
	if strings.Contains(line, "@") {
		return false
	}
	return !digitRunPattern.MatchString(line)
}
