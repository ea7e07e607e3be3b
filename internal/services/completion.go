package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/portfolio-chat/relay/internal/models"
)

// FallbackReply is used when the provider answers successfully without any text.
const FallbackReply = "I couldn't generate a response."

const (
	redacted        = "[REDACTED]"
	maxResponseBody = 4 << 20
)

// Completer produces one assistant reply for an assembled message list.
type Completer interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// CompletionOptions configures the provider client. Generation parameters are
// fixed for the life of the process.
type CompletionOptions struct {
	APIKey      string
	URL         string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// CompletionClient talks to an OpenAI-compatible chat completions endpoint.
type CompletionClient struct {
	apiKey      string
	url         string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

func NewCompletionClient(opts CompletionOptions) *CompletionClient {
	return &CompletionClient{
		apiKey:      opts.APIKey,
		url:         opts.URL,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
	Stream      bool                 `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one non-streaming completion request. It never retries.
func (c *CompletionClient) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UnreachableError{Err: c.scrubErr(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", &UnreachableError{Err: c.scrubErr(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: c.scrub(string(body))}
	}

	return extractReply(body), nil
}

// extractReply reads choices[0].message.content. Any other shape counts as
// an absent reply.
func extractReply(body []byte) string {
	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return FallbackReply
	}
	if len(parsed.Choices) == 0 {
		return FallbackReply
	}
	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return FallbackReply
	}
	return content
}

func (c *CompletionClient) scrub(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, redacted)
}

func (c *CompletionClient) scrubErr(err error) error {
	msg := err.Error()
	if clean := c.scrub(msg); clean != msg {
		return fmt.Errorf("%s", clean)
	}
	return err
}
