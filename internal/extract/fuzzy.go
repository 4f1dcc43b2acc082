package extract

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyStrategy is the deterministic fallback matcher. It unions two passes
// over the input:
//   - exact token matching: vocabulary entries whose lower-cased form
//     appears as a whole token (or, for multi-word entries, as a phrase)
//   - approximate matching: vocabulary entries ranked by Levenshtein
//     distance against the input tokens, best matches first
//
// It never fails; absence of matches yields an empty set.
type FuzzyStrategy struct{}

// NewFuzzyStrategy creates the fallback matcher
func NewFuzzyStrategy() *FuzzyStrategy {
	return &FuzzyStrategy{}
}

// Name implements Strategy
func (s *FuzzyStrategy) Name() string { return "fuzzy" }

// Extract implements Strategy
func (s *FuzzyStrategy) Extract(_ context.Context, text string, vocab []string) ([]string, error) {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	seen := make(map[string]bool)
	matches := make([]string, 0)

	// Exact pass, in vocabulary order
	for _, term := range vocab {
		termLower := strings.ToLower(term)
		if matchesExact(termLower, lower, tokens) && !seen[termLower] {
			seen[termLower] = true
			matches = append(matches, term)
		}
	}

	// Approximate pass, ordered by descending match quality
	type ranked struct {
		term string
		rank int
	}
	candidates := make([]ranked, 0)
	for _, term := range vocab {
		termLower := strings.ToLower(term)
		if seen[termLower] {
			continue
		}
		if rank := bestRank(termLower, tokens); rank >= 0 {
			candidates = append(candidates, ranked{term: term, rank: rank})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank < candidates[j].rank
	})
	for _, c := range candidates {
		key := strings.ToLower(c.term)
		if !seen[key] {
			seen[key] = true
			matches = append(matches, c.term)
		}
	}

	return matches, nil
}

// tokenize splits lower-cased input on whitespace, commas and common
// punctuation
func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '.' || r == ';' || r == '!' || r == '?'
	})
}

// matchesExact reports whether a lower-cased vocabulary term appears in the
// input: whole-token equality for single words, phrase containment for
// multi-word terms.
func matchesExact(termLower, lowerText string, tokens []string) bool {
	if strings.ContainsRune(termLower, ' ') {
		return strings.Contains(lowerText, termLower)
	}
	for _, tok := range tokens {
		if tok == termLower {
			return true
		}
	}
	return false
}

// bestRank returns the best (lowest) Levenshtein rank between the term and
// any input token, or -1 when nothing comes close. Tokens shorter than 3
// runes are too noisy to fuzz against.
func bestRank(termLower string, tokens []string) int {
	best := -1

	for _, tok := range tokens {
		if len(tok) < 3 {
			continue
		}

		limit := len(termLower)
		if len(tok) > limit {
			limit = len(tok)
		}
		limit /= 2
		if limit > 4 {
			limit = 4
		}

		rank := fuzzy.RankMatchNormalizedFold(tok, termLower)
		if r := fuzzy.RankMatchNormalizedFold(termLower, tok); r >= 0 && (rank < 0 || r < rank) {
			rank = r
		}
		if rank < 0 || rank > limit {
			continue
		}
		if best < 0 || rank < best {
			best = rank
		}
	}

	return best
}
