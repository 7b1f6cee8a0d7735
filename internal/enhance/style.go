package enhance

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// lengthTolerancePercent is how far a rewrite may fall below the original length
const lengthTolerancePercent = 0.2

// Common strong action verbs for resume bullets (heuristic check)
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"delivered": true, "designed": true, "developed": true, "drove": true,
	"engineered": true, "grew": true, "implemented": true, "improved": true,
	"increased": true, "launched": true, "led": true, "managed": true,
	"mentored": true, "optimized": true, "owned": true, "reduced": true,
	"ran": true, "scaled": true, "shipped": true, "spearheaded": true,
	"streamlined": true, "transformed": true,
}

// fillerPhrases weaken a resume line without adding information
var fillerPhrases = []string{
	"responsible for",
	"duties included",
	"worked on",
	"helped with",
	"team player",
	"hard worker",
	"results-driven",
	"go-getter",
	"synergy",
	"think outside the box",
}

var digitPattern = regexp.MustCompile(`\d`)

// StyleChecks reports heuristic quality signals for a rewritten description or bullet list.
type StyleChecks struct {
	StrongVerb   bool `json:"strong_verb"`
	Quantified   bool `json:"quantified"`
	NoFiller     bool `json:"no_filler"`
	TargetLength bool `json:"target_length"`
}

// CheckStyle evaluates enhanced against original. For achievements every
// bullet must open with an action verb; other text is checked on its first word.
// Only description and achievements are checked; other field types return nil.
func CheckStyle(ft FieldType, original, enhanced string) *StyleChecks {
	if ft != FieldDescription && ft != FieldAchievements {
		return nil
	}

	lower := strings.ToLower(strings.TrimSpace(enhanced))
	checks := &StyleChecks{
		Quantified:   checkQuantifiedImpact(enhanced),
		NoFiller:     checkNoFiller(lower),
		TargetLength: checkTargetLength(utf8.RuneCountInString(enhanced), utf8.RuneCountInString(original)),
	}

	if ft == FieldAchievements {
		bullets := splitBullets(lower)
		checks.StrongVerb = len(bullets) > 0
		for _, b := range bullets {
			if !checkStrongVerb(b) {
				checks.StrongVerb = false
				break
			}
		}
	} else {
		checks.StrongVerb = checkStrongVerb(lower)
	}
	return checks
}

// checkStrongVerb checks if text starts with a strong action verb
func checkStrongVerb(textLower string) bool {
	words := strings.Fields(textLower)
	if len(words) == 0 {
		return false
	}

	first := strings.TrimRight(words[0], ".,!?;:")
	if strongVerbs[first] {
		return true
	}
	// past-tense verbs are usually actions
	return strings.HasSuffix(first, "ed") && len(first) > 3
}

// checkQuantifiedImpact checks if text contains numbers or metrics
func checkQuantifiedImpact(text string) bool {
	return digitPattern.MatchString(text) || strings.Contains(text, "%")
}

func checkNoFiller(textLower string) bool {
	for _, phrase := range fillerPhrases {
		if strings.Contains(textLower, phrase) {
			return false
		}
	}
	return true
}

// checkTargetLength checks if rewritten text length is within tolerance of original
func checkTargetLength(rewrittenLength, originalLength int) bool {
	if originalLength == 0 {
		return rewrittenLength > 0
	}

	tolerance := float64(originalLength) * lengthTolerancePercent
	minLength := float64(originalLength) - tolerance
	maxLength := float64(originalLength) + tolerance

	// rewrites may expand further than they shrink
	return float64(rewrittenLength) >= minLength && float64(rewrittenLength) <= maxLength*1.5
}
