package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/portfolio-chat/relay/internal/models"
)

type chatRelay interface {
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
}

type ChatHandler struct {
	relay        chatRelay
	maxBodyBytes int64
}

func NewChatHandler(relay chatRelay, maxBodyBytes int64) *ChatHandler {
	return &ChatHandler{
		relay:        relay,
		maxBodyBytes: maxBodyBytes,
	}
}

// Chat relays one visitor message to the completion provider.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req models.ChatRequest
	if err := decodeSingleJSON(r.Body, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("Request body too large", ""))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid JSON", ""))
		return
	}

	reply, err := h.relay.Chat(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// Preflight answers CORS preflight requests. The CORS middleware has already
// set the headers.
func (h *ChatHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeSingleJSON decodes exactly one JSON value; trailing data is an error.
func decodeSingleJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResp("Method not allowed", ""))
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResp("Not found", ""))
}
