package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

var skillSeparators = regexp.MustCompile(`[,•-]`)

// parseSkills flattens the skills buffer into tokens, capped at types.MaxSkills.
func (p *Parser) parseSkills(lines []string) []string {
	skills := []string{}
	for _, line := range lines {
		for _, token := range skillSeparators.Split(line, -1) {
			token = strings.TrimSpace(token)
			if runeLen(token) > 1 {
				skills = append(skills, token)
			}
		}
	}

	if p.opts.NormalizeSkills {
		skills = normalizeSkills(skills, p.aliases)
	}
	if len(skills) == 0 && p.opts.EmptySections == EmptySectionsPlaceholder {
		skills = append(skills, p.opts.Defaults.Skills...)
	}
	if len(skills) > types.MaxSkills {
		skills = skills[:types.MaxSkills]
	}
	return skills
}

// assembleSummary joins the summary buffer into one paragraph.
func (p *Parser) assembleSummary(lines []string) string {
	summary := strings.TrimSpace(strings.Join(lines, " "))
	if summary == "" && p.opts.EmptySections == EmptySectionsPlaceholder {
		return p.opts.Defaults.Summary
	}
	return summary
}
