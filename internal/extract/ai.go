package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/healthsetu/healthsetu-be/internal/circuitbreaker"
	"github.com/healthsetu/healthsetu-be/internal/privacy"
	"github.com/healthsetu/healthsetu-be/pkg/llm"
)

const extractionSystemPrompt = "You map free-form symptom descriptions onto a controlled vocabulary. " +
	"Reply with a comma-separated list of vocabulary terms only, with no explanations. " +
	"If nothing in the text matches the vocabulary, reply with NONE."

// AIStrategy asks an LLM to pick vocabulary terms out of free text. Model
// output is parsed as a comma-delimited list and intersected against the
// vocabulary case-insensitively, so hallucinated terms never escape the
// controlled list. Any API fault or unusable output is reported as an
// error and absorbed by the pipeline.
type AIStrategy struct {
	client  llm.Client
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
}

// NewAIStrategy creates an AI extraction strategy over the given client
func NewAIStrategy(client llm.Client) *AIStrategy {
	return &AIStrategy{
		client:  client,
		breaker: circuitbreaker.New(5, 2*time.Minute),
		timeout: 30 * time.Second,
	}
}

// Name implements Strategy
func (s *AIStrategy) Name() string { return "ai" }

// Extract implements Strategy
func (s *AIStrategy) Extract(ctx context.Context, text string, vocab []string) ([]string, error) {
	if s.breaker.State() == circuitbreaker.StateOpen {
		return nil, circuitbreaker.ErrCircuitOpen
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Vocabulary: %s\n\nText: %s",
		strings.Join(vocab, ", "), privacy.SanitizeForAPI(text))

	req := llm.ChatRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   200,
	}

	var raw string
	err := s.breaker.Call(func() error {
		resp, err := s.client.ChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		raw = resp.Text()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	return parseCandidates(raw, vocab), nil
}

// parseCandidates splits raw model output on commas and keeps only terms
// present in the vocabulary. Candidates are matched case-insensitively and
// returned in their canonical vocabulary spelling.
func parseCandidates(raw string, vocab []string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "NONE") {
		return nil
	}

	index := vocabIndex(vocab)
	seen := make(map[string]bool)
	matches := make([]string, 0)

	for _, candidate := range strings.Split(raw, ",") {
		key := strings.ToLower(strings.TrimSpace(candidate))
		if key == "" {
			continue
		}
		canonical, ok := index[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		matches = append(matches, canonical)
	}

	return matches
}
