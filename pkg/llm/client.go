package llm

import (
	"context"
)

// Client interface for LLM API interactions
type Client interface {
	// ChatCompletion sends a chat completion request and returns the full response
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
