package parsing

import (
	"strings"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"ms excel":   "Excel",
	"excel":      "Excel",
}

// NormalizeSkillName normalizes a skill name to its canonical form.
// Unknown names are returned trimmed but otherwise unchanged.
func NormalizeSkillName(skillName string) string {
	return normalizeSkillName(skillName, nil)
}

func normalizeSkillName(skillName string, aliases map[string]string) string {
	normalized := strings.TrimSpace(skillName)
	key := strings.ToLower(normalized)
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	if canonical, ok := skillNormalizations[key]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills canonicalizes each skill and drops case-insensitive
// duplicates, keeping the first occurrence.
func NormalizeSkills(skills []string) []string {
	return normalizeSkills(skills, nil)
}

// normalizeSkills is NormalizeSkills with extra aliases keyed by lowercase spelling.
func normalizeSkills(skills []string, aliases map[string]string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		name := normalizeSkillName(skill, aliases)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func lowerKeys(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}
