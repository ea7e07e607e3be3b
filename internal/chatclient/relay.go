package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/portfolio-chat/relay/internal/models"
)

const maxErrorBody = 4 << 10

// StatusError is returned when the relay answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Body)
}

// RelayClient posts chat requests to the relay endpoint.
type RelayClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewRelayClient builds a client for endpoint. A nil httpClient means a
// client without a timeout; cancellation comes from the request context.
func NewRelayClient(endpoint string, httpClient *http.Client) *RelayClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RelayClient{endpoint: endpoint, httpClient: httpClient}
}

func (c *RelayClient) Endpoint() string {
	return c.endpoint
}

// Send performs one relay round-trip and returns the reply text.
func (c *RelayClient) Send(ctx context.Context, req models.ChatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode relay response: %w", err)
	}
	return out.Reply, nil
}
