package skills

import (
	"sort"
	"strings"
)

// MatchSkills partitions candidate skills into those found in the given text
// and those missing from it. Per skill it first checks every synonym variant
// as a substring of the normalized text, then falls back to fuzzy matching
// of variants against individual text tokens. Matching never fails; empty
// inputs simply yield empty partitions.
func (c *Catalog) MatchSkills(candidateSkills []string, text string, threshold float64) (matched, missing []string) {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	normText := Normalize(text)
	tokens := fuzzyTokens(normText)

	for _, skill := range candidateSkills {
		if Normalize(skill) == "" {
			missing = append(missing, skill)
			continue
		}
		if c.skillInText(skill, normText, tokens, threshold) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

// OverlapRatio is |matched| / |candidateSkills|, 0.0 for an empty candidate
// list by convention.
func OverlapRatio(matched, candidateSkills []string) float64 {
	if len(candidateSkills) == 0 {
		return 0.0
	}
	return float64(len(matched)) / float64(len(candidateSkills))
}

// ExtractFromText scans text for known skill variants and returns the
// canonical keys found, sorted for determinism. Useful for deriving skills
// from resume text when a profile lists none.
func (c *Catalog) ExtractFromText(text string) []string {
	if text == "" {
		return nil
	}
	normText := Normalize(text)
	seen := make(map[string]bool)
	for variant, key := range c.variantToKey {
		if !seen[key] && strings.Contains(normText, variant) {
			seen[key] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) skillInText(skill, normText string, tokens map[string]bool, threshold float64) bool {
	variants := c.VariantsOf(skill)

	// 1. Exact: any variant is a substring of the text.
	for _, v := range variants {
		if v != "" && strings.Contains(normText, v) {
			return true
		}
	}

	// 2. Fuzzy fallback over pre-indexed text tokens, both sides >= 3 chars.
	for _, v := range variants {
		if len(v) < minFuzzyTokenLen {
			continue
		}
		for tok := range tokens {
			if Similarity(v, tok) >= threshold {
				return true
			}
		}
	}
	return false
}

// fuzzyTokens splits normalized text into the unique word set eligible for
// fuzzy comparison. Pre-indexing keeps the per-skill scan linear in distinct
// words instead of total words.
func fuzzyTokens(normText string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(normText) {
		if len(w) >= minFuzzyTokenLen {
			tokens[w] = true
		}
	}
	return tokens
}
