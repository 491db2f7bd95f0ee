package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xtding233/gacha-bot/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the fields that failed validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrMsgNotEnoughDiamonds
	case errors.Is(err, domain.ErrInvalidDrawCount):
		return http.StatusBadRequest, ErrMsgInvalidDrawCountErr
	case errors.Is(err, domain.ErrAlreadySignedIn):
		return http.StatusConflict, ErrMsgAlreadySignedInError
	case errors.Is(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, ErrMsgCodeNotFoundError
	case errors.Is(err, domain.ErrCodeAlreadyRedeemed):
		return http.StatusConflict, ErrMsgCodeUsedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
