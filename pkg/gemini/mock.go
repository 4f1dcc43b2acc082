package gemini

import (
	"context"
	"sync"

	"github.com/healthsetu/healthsetu-be/pkg/llm"
)

// MockClient implements the llm.Client interface for testing
type MockClient struct {
	mu sync.Mutex

	// ChatFunc allows customizing the completion behavior
	ChatFunc func(context.Context, llm.ChatRequest) (*llm.ChatResponse, error)

	// Tracking for assertions
	ChatCalls []llm.ChatRequest
}

// Ensure MockClient implements llm.Client
var _ llm.Client = (*MockClient)(nil)

// NewMockClient creates a new mock client with default behavior
func NewMockClient() *MockClient {
	return &MockClient{
		ChatCalls: make([]llm.ChatRequest, 0),
	}
}

// ChatCompletion implements llm.Client.ChatCompletion
func (m *MockClient) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, req)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}

	return NewMockResponse("This is a mock response."), nil
}

// NewMockResponse builds a single-choice response with the given content
func NewMockResponse(content string) *llm.ChatResponse {
	resp := &llm.ChatResponse{
		ID:      "mock-response-1",
		Object:  "chat.completion",
		Created: 1234567890,
		Model:   "mock-model",
	}

	choice := struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	}{
		Index:        0,
		FinishReason: "stop",
	}
	choice.Message.Role = "assistant"
	choice.Message.Content = content
	resp.Choices = append(resp.Choices, choice)

	resp.Usage.PromptTokens = 10
	resp.Usage.CompletionTokens = 5
	resp.Usage.TotalTokens = 15

	return resp
}

// Reset clears the call history
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = make([]llm.ChatRequest, 0)
}

// GetChatCallCount returns the number of completion calls made
func (m *MockClient) GetChatCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls)
}
