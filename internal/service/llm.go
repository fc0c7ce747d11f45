package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pageza/bangladiet/backend/config"
)

// ErrLLMNotConfigured is returned when no API key is set.
var ErrLLMNotConfigured = errors.New("LLM API key is not configured")

// LLMService talks to an OpenAI-compatible chat completions endpoint
// (Groq by default).
type LLMService struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	timeout     time.Duration
	client      *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, ErrLLMNotConfigured
	}

	return &LLMService{
		apiKey:      cfg.LLMAPIKey,
		apiURL:      cfg.LLMAPIURL,
		model:       cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		timeout:     cfg.ExternalTimeout,
		client:      &http.Client{},
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
	TopP           float64           `json:"top_p"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
}

// CompletionOptions tune a single completion.
type CompletionOptions struct {
	System    string
	MaxTokens int
	// JSONMode asks the provider to constrain output to a JSON object.
	JSONMode bool
}

// Complete sends prompt as a user message and returns the first choice's
// content. The call is bounded by the configured external timeout.
func (s *LLMService) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	messages := make([]Message, 0, 2)
	if opts.System != "" {
		messages = append(messages, Message{Role: "system", Content: opts.System})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})

	reqBody := Request{
		Model:       s.model,
		Messages:    messages,
		Temperature: s.temperature,
		TopP:        1,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSONMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	log.Printf("[LLMService] Completion from %s took %s", s.model, time.Since(start).Round(time.Millisecond))
	return result.Choices[0].Message.Content, nil
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
