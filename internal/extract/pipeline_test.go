package extract

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/healthsetu/healthsetu-be/pkg/gemini"
	"github.com/healthsetu/healthsetu-be/pkg/llm"
)

func fallbackOnlyPipeline() *Pipeline {
	return NewPipeline(NewFuzzyStrategy())
}

func TestNormalizeFallbackDeterminism(t *testing.T) {
	p := fallbackOnlyPipeline()
	vocab := []string{"fever", "cough", "nausea"}

	got := p.NormalizeText(context.Background(), "fever, cough", vocab)
	want := []string{"fever", "cough"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeText() = %v, want %v", got, want)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	p := fallbackOnlyPipeline()
	vocab := []string{"fever", "cough"}

	if got := p.Normalize(context.Background(), nil, vocab); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
	if got := p.NormalizeText(context.Background(), "", vocab); len(got) != 0 {
		t.Errorf("NormalizeText(\"\") = %v, want empty", got)
	}
	if got := p.NormalizeText(context.Background(), "   ", vocab); len(got) != 0 {
		t.Errorf("NormalizeText(blank) = %v, want empty", got)
	}
}

func TestNormalizeUnionsSequenceElements(t *testing.T) {
	p := fallbackOnlyPipeline()
	vocab := []string{"fever", "cough", "headache"}

	got := p.Normalize(context.Background(), []string{"fever and cough", "cough", "headache"}, vocab)
	want := []string{"fever", "cough", "headache"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeVocabularyContainment(t *testing.T) {
	p := fallbackOnlyPipeline()
	vocab := []string{"fever", "cough", "joint pain"}
	index := make(map[string]bool)
	for _, v := range vocab {
		index[v] = true
	}

	inputs := [][]string{
		{"high feever, bad caugh and some joint pain"},
		{"nothing relevant here"},
		{"fever", "vomiting", "joint pains"},
	}
	for _, input := range inputs {
		for _, term := range p.Normalize(context.Background(), input, vocab) {
			if !index[term] {
				t.Errorf("Normalize(%v) produced %q outside vocabulary", input, term)
			}
		}
	}
}

func TestNormalizeIdempotence(t *testing.T) {
	p := fallbackOnlyPipeline()
	vocab := []string{"fever", "cough", "nausea", "headache"}

	first := p.NormalizeText(context.Background(), "fever, cough and a headache", vocab)
	second := p.NormalizeText(context.Background(), strings.Join(first, ","), vocab)

	firstSet := make(map[string]bool)
	for _, term := range first {
		firstSet[term] = true
	}
	for _, term := range second {
		if !firstSet[term] {
			t.Errorf("re-normalizing grew the set: %q not in %v", term, first)
		}
	}
}

func TestNormalizeAIFirstWhenProductive(t *testing.T) {
	mock := gemini.NewMockClient()
	mock.ChatFunc = func(_ context.Context, _ llm.ChatRequest) (*llm.ChatResponse, error) {
		return gemini.NewMockResponse("fever, nausea"), nil
	}

	p := NewPipeline(NewAIStrategy(mock), NewFuzzyStrategy())
	vocab := []string{"fever", "cough", "nausea"}

	got := p.NormalizeText(context.Background(), "I feel hot and queasy", vocab)
	want := []string{"fever", "nausea"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeText() = %v, want %v", got, want)
	}
	if mock.GetChatCallCount() != 1 {
		t.Errorf("expected 1 AI call, got %d", mock.GetChatCallCount())
	}
}

func TestNormalizeRejectsHallucinatedTerms(t *testing.T) {
	mock := gemini.NewMockClient()
	mock.ChatFunc = func(_ context.Context, _ llm.ChatRequest) (*llm.ChatResponse, error) {
		return gemini.NewMockResponse("fever, ebola, dragon pox"), nil
	}

	p := NewPipeline(NewAIStrategy(mock), NewFuzzyStrategy())
	vocab := []string{"fever", "cough"}

	got := p.NormalizeText(context.Background(), "fever and other things", vocab)
	want := []string{"fever"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeText() = %v, want %v", got, want)
	}
}

func TestNormalizeFallsBackOnAIError(t *testing.T) {
	mock := gemini.NewMockClient()
	mock.ChatFunc = func(_ context.Context, _ llm.ChatRequest) (*llm.ChatResponse, error) {
		return nil, errors.New("upstream unavailable")
	}

	p := NewPipeline(NewAIStrategy(mock), NewFuzzyStrategy())
	vocab := []string{"fever", "cough", "nausea"}

	got := p.NormalizeText(context.Background(), "fever, cough", vocab)
	want := []string{"fever", "cough"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeText() = %v, want %v", got, want)
	}
}

func TestNormalizeFallsBackOnUnparsableOutput(t *testing.T) {
	mock := gemini.NewMockClient()
	mock.ChatFunc = func(_ context.Context, _ llm.ChatRequest) (*llm.ChatResponse, error) {
		return gemini.NewMockResponse("I am sorry, I cannot help with that."), nil
	}

	p := NewPipeline(NewAIStrategy(mock), NewFuzzyStrategy())
	vocab := []string{"fever", "cough"}

	got := p.NormalizeText(context.Background(), "fever and cough", vocab)
	want := []string{"fever", "cough"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeText() = %v, want %v", got, want)
	}
}
