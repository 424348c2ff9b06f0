// Package matching scores how well a job posting fits a user's profile.
// The score is a plain keyword overlap: the fraction of profile terms that
// appear in the job text, scaled to 0..100.
package matching

import (
	"math"
	"strings"
	"unicode"
)

// Score returns the overlap between terms and jobText as a percentage,
// rounded to one decimal. With no terms the score is 0: an empty profile
// matches nothing rather than everything.
func Score(terms []string, jobText string) float64 {
	cleaned := dedupe(terms)
	if len(cleaned) == 0 {
		return 0
	}

	haystack := strings.ToLower(jobText)
	tokens := tokenSet(haystack)

	matched := 0
	for _, term := range cleaned {
		if containsTerm(haystack, tokens, term) {
			matched++
		}
	}
	score := float64(matched) / float64(len(cleaned)) * 100
	return math.Round(score*10) / 10
}

// containsTerm matches multi-word terms by substring and single words by
// whole token, so "go" does not match "going".
func containsTerm(haystack string, tokens map[string]bool, term string) bool {
	if strings.ContainsRune(term, ' ') {
		return strings.Contains(haystack, term)
	}
	return tokens[term]
}

func tokenSet(text string) map[string]bool {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}

func dedupe(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}
