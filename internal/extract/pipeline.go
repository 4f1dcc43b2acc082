package extract

import (
	"context"
	"log"
	"strings"
)

// Strategy produces vocabulary terms from one piece of free text. A strategy
// either succeeds with a (possibly empty) match set or fails with an error;
// the pipeline decides progression.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, text string, vocab []string) ([]string, error)
}

// Pipeline normalizes free-form symptom text against a controlled
// vocabulary by running an ordered list of strategies. The first strategy
// that yields a non-empty match set wins; errors and empty results fall
// through to the next strategy.
type Pipeline struct {
	strategies []Strategy
}

// NewPipeline creates a pipeline over the given strategies, tried in order
func NewPipeline(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Normalize runs each input through the full strategy chain independently
// and unions the results. Output terms are canonical vocabulary spellings,
// deduplicated, in first-seen order. Empty input yields an empty set.
func (p *Pipeline) Normalize(ctx context.Context, texts []string, vocab []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, text := range texts {
		for _, term := range p.normalizeOne(ctx, text, vocab) {
			key := strings.ToLower(term)
			if !seen[key] {
				seen[key] = true
				result = append(result, term)
			}
		}
	}

	return result
}

// NormalizeText is the single-string form of Normalize
func (p *Pipeline) NormalizeText(ctx context.Context, text string, vocab []string) []string {
	return p.Normalize(ctx, []string{text}, vocab)
}

func (p *Pipeline) normalizeOne(ctx context.Context, text string, vocab []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	for _, s := range p.strategies {
		matches, err := s.Extract(ctx, text, vocab)
		if err != nil {
			log.Printf("Extraction strategy %s failed, falling through: %v", s.Name(), err)
			continue
		}
		if len(matches) > 0 {
			return matches
		}
	}

	return nil
}

// vocabIndex maps lower-cased vocabulary terms to their canonical spelling
func vocabIndex(vocab []string) map[string]string {
	index := make(map[string]string, len(vocab))
	for _, term := range vocab {
		index[strings.ToLower(term)] = term
	}
	return index
}
