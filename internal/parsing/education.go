package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

var (
	educationSeparators = regexp.MustCompile(`[-–—|,]`)
	yearPattern         = regexp.MustCompile(`\d{4}`)
)

// parseEducation produces one entry per education line longer than five characters.
func (p *Parser) parseEducation(lines []string) []types.EducationEntry {
	d := p.opts.Defaults
	entries := []types.EducationEntry{}

	for _, line := range lines {
		if runeLen(line) <= 5 {
			continue
		}
		entry := types.EducationEntry{
			Degree:      d.Degree,
			Institution: d.Institution,
			Year:        d.Year,
		}
		parts := educationSeparators.Split(line, -1)
		if degree := strings.TrimSpace(parts[0]); degree != "" {
			entry.Degree = degree
		}
		if len(parts) > 1 {
			if institution := strings.TrimSpace(parts[1]); institution != "" {
				entry.Institution = institution
			}
		}
		if year := yearPattern.FindString(line); year != "" {
			entry.Year = year
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 && p.opts.EmptySections == EmptySectionsPlaceholder {
		entries = append(entries, p.defaultEducation())
	}
	return entries
}

func (p *Parser) defaultEducation() types.EducationEntry {
	return types.EducationEntry{
		Degree:      p.opts.Defaults.Degree,
		Institution: p.opts.Defaults.Institution,
		Year:        p.opts.Defaults.Year,
	}
}
