package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/portfolio-chat/relay/internal/models"
	"github.com/portfolio-chat/relay/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message, detail string) models.ErrorResponse {
	return models.ErrorResponse{
		Error:  message,
		Detail: detail,
	}
}

func handleServiceError(w http.ResponseWriter, err error) {
	var (
		validation  *services.ValidationError
		unreachable *services.UnreachableError
		upstream    *services.UpstreamError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResp(validation.Message, ""))
	case errors.As(err, &unreachable):
		writeJSON(w, http.StatusBadGateway, errorResp("Failed to reach completion provider", unreachable.Err.Error()))
	case errors.As(err, &upstream):
		writeJSON(w, upstreamStatus(upstream.StatusCode), errorResp("Completion provider error", upstream.Body))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("An unexpected error occurred", ""))
	}
}

// upstreamStatus forwards the provider's error status; anything outside the
// 4xx/5xx range is reported as a bad gateway.
func upstreamStatus(code int) int {
	if code < 400 || code > 599 {
		return http.StatusBadGateway
	}
	return code
}
