package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-chat/relay/internal/models"
	"github.com/portfolio-chat/relay/internal/services"
)

type stubRelay struct {
	got   models.ChatRequest
	calls int
	reply string
	err   error
}

func (s *stubRelay) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	s.calls++
	s.got = req
	if s.err != nil {
		return "", s.err
	}
	if strings.TrimSpace(req.Message) == "" {
		return "", services.ErrMissingMessage
	}
	return s.reply, nil
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Chat(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

// ─── Chat Handler Tests ───

func TestChatHandler_Success(t *testing.T) {
	relay := &stubRelay{reply: "Hi there"}
	h := NewChatHandler(relay, 1<<20)

	body, _ := json.Marshal(map[string]any{
		"message":  "Tell me about your thesis",
		"history":  []map[string]string{{"role": "user", "content": "hello"}},
		"context":  map[string]any{"owner": map[string]any{"name": "Ada"}, "publications": []map[string]any{{"title": "P", "year": 2024}}},
		"language": "tr",
	})
	rr := postChat(t, h, string(body))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp models.ChatResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Hi there", resp.Reply)

	assert.Equal(t, "Tell me about your thesis", relay.got.Message)
	assert.Equal(t, "tr", relay.got.Language)
	assert.Equal(t, "Ada", relay.got.Context.Owner.Name)
	assert.Equal(t, models.Year("2024"), relay.got.Context.Publications[0].Year)
	assert.Len(t, relay.got.History, 1)
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	relay := &stubRelay{}
	h := NewChatHandler(relay, 1<<20)

	for _, body := range []string{"", "{", "not json", `{"message": 5}`} {
		rr := postChat(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
		assert.Equal(t, "Invalid JSON", decodeError(t, rr).Error)
	}
	assert.Zero(t, relay.calls)
}

func TestChatHandler_TrailingData(t *testing.T) {
	relay := &stubRelay{reply: "hello"}
	h := NewChatHandler(relay, 1<<20)

	for _, body := range []string{`{"message":"hi"} garbage`, `{"message":"hi"}{"message":"again"}`, `{"message":"hi"} 1`} {
		rr := postChat(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
		assert.Equal(t, "Invalid JSON", decodeError(t, rr).Error)
	}
	assert.Zero(t, relay.calls)

	rr := postChat(t, h, "{\"message\":\"hi\"}\n  ")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, relay.calls)
}

func TestChatHandler_MissingMessage(t *testing.T) {
	h := NewChatHandler(&stubRelay{}, 1<<20)

	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   "}`, `{"history":[]}`} {
		rr := postChat(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "message is required", decodeError(t, rr).Error)
	}
}

func TestChatHandler_BodyTooLarge(t *testing.T) {
	h := NewChatHandler(&stubRelay{reply: "x"}, 64)

	body := `{"message":"hi","context":{"owner":{"bio":"` + strings.Repeat("a", 200) + `"}}}`
	rr := postChat(t, h, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestChatHandler_Unreachable(t *testing.T) {
	relay := &stubRelay{err: &services.UnreachableError{Err: errors.New("dial tcp: connection refused")}}
	h := NewChatHandler(relay, 1<<20)

	rr := postChat(t, h, `{"message":"hi"}`)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, "Failed to reach completion provider", resp.Error)
	assert.Equal(t, "dial tcp: connection refused", resp.Detail)
}

func TestChatHandler_UpstreamError(t *testing.T) {
	relay := &stubRelay{err: &services.UpstreamError{StatusCode: http.StatusTooManyRequests, Body: `{"error":"rate limited"}`}}
	h := NewChatHandler(relay, 1<<20)

	rr := postChat(t, h, `{"message":"hi"}`)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, "Completion provider error", resp.Error)
	assert.Equal(t, `{"error":"rate limited"}`, resp.Detail)
}

func TestChatHandler_UnexpectedError(t *testing.T) {
	h := NewChatHandler(&stubRelay{err: errors.New("boom")}, 1<<20)

	rr := postChat(t, h, `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, decodeError(t, rr).Detail)
}

func TestChatHandler_Preflight(t *testing.T) {
	h := NewChatHandler(&stubRelay{}, 1<<20)
	rr := httptest.NewRecorder()

	h.Preflight(rr, httptest.NewRequest(http.MethodOptions, "/chat", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, rr.Body.Len())
}

func TestUpstreamStatus(t *testing.T) {
	tests := []struct {
		in       int
		expected int
	}{
		{401, 401},
		{429, 429},
		{503, 503},
		{302, http.StatusBadGateway},
		{0, http.StatusBadGateway},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, upstreamStatus(tc.in), "status %d", tc.in)
	}
}

// ─── JSON Response Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestErrorResponse_OmitsEmptyDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(errorResp("Invalid JSON", "")))

	assert.JSONEq(t, `{"error":"Invalid JSON"}`, buf.String())
}
