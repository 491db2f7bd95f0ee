package handler

import (
	"net/http"

	"github.com/xtding233/gacha-bot/internal/logger"
	"github.com/xtding233/gacha-bot/internal/pull"
)

// PullRequest is the body of POST /api/v1/pulls
type PullRequest struct {
	UserID string `json:"user_id" validate:"required,max=64,excludesall=/ "`
	Count  int    `json:"count" validate:"required,oneof=1 10"`
}

// HandlePull charges the user and runs a single or batch draw.
func HandlePull(svc pull.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PullRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			return
		}

		res, err := svc.Pull(r.Context(), req.UserID, req.Count)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			logServiceError(r, err, status, "pull", "user_id", req.UserID, "count", req.Count)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// logServiceError logs server faults at error level and client faults at info.
func logServiceError(r *http.Request, err error, status int, op string, args ...any) {
	log := logger.FromContext(r.Context()).With("op", op, "status", status, "error", err)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceFailed, args...)
		return
	}
	log.Info(LogMsgServiceFailed, args...)
}
