package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/healthsetu/healthsetu-be/pkg/llm"
)

// HTTPClient implements the llm.Client interface for Gemini using the REST API
type HTTPClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Ensure HTTPClient implements llm.Client
var _ llm.Client = (*HTTPClient)(nil)

// Config holds configuration for the Gemini client
type Config struct {
	APIKey  string
	Model   string        // Default: gemini-2.0-flash
	Timeout time.Duration // Default: 30s
}

// NewHTTPClient creates a new Gemini HTTP client
func NewHTTPClient(config Config) *HTTPClient {
	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &HTTPClient{
		apiKey:  config.APIKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		model:   config.Model,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}

// Internal Gemini types
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// toGeminiRequest converts an llm.ChatRequest to the Gemini wire format.
// Gemini has no system role in contents, so system messages are coerced
// to user messages.
func (c *HTTPClient) toGeminiRequest(req llm.ChatRequest) geminiRequest {
	contents := make([]geminiContent, len(req.Messages))
	for i, msg := range req.Messages {
		role := msg.Role
		if role == "assistant" {
			role = "model"
		} else if role == "system" {
			role = "user"
		}

		contents[i] = geminiContent{
			Role: role,
			Parts: []geminiPart{
				{Text: msg.Content},
			},
		}
	}

	return geminiRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
}

// ChatCompletion implements llm.Client.ChatCompletion
func (c *HTTPClient) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	gemReq := c.toGeminiRequest(req)
	body, err := json.Marshal(gemReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return c.toChatResponse(gResp), nil
}

// toChatResponse converts a Gemini response to the provider-neutral shape
func (c *HTTPClient) toChatResponse(gResp geminiResponse) *llm.ChatResponse {
	chatResp := &llm.ChatResponse{
		Object: "chat.completion",
		Model:  c.model,
	}
	chatResp.Usage.PromptTokens = gResp.UsageMetadata.PromptTokenCount
	chatResp.Usage.CompletionTokens = gResp.UsageMetadata.CandidatesTokenCount
	chatResp.Usage.TotalTokens = gResp.UsageMetadata.TotalTokenCount

	for i, cand := range gResp.Candidates {
		content := ""
		if len(cand.Content.Parts) > 0 {
			content = cand.Content.Parts[0].Text
		}

		choice := struct {
			Index   int `json:"index"`
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		}{
			Index:        i,
			FinishReason: cand.FinishReason,
		}
		choice.Message.Role = "assistant"
		choice.Message.Content = content

		chatResp.Choices = append(chatResp.Choices, choice)
	}

	return chatResp
}
