package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/profile"
)

// HistoryResponse wraps a page of pull history
type HistoryResponse struct {
	UserID string              `json:"user_id"`
	Pulls  []domain.PullRecord `json:"pulls"`
}

// HandleGetProfile returns balance, totals and pity progress.
func HandleGetProfile(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		p, err := svc.Get(r.Context(), userID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			logServiceError(r, err, status, "profile", "user_id", userID)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleGetHistory returns the user's most recent pulls, newest first.
func HandleGetHistory(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		limit := 0
		if raw := r.URL.Query().Get(QueryParamLimit); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = n
		}

		hist, err := svc.History(r.Context(), userID, limit)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			logServiceError(r, err, status, "history", "user_id", userID)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, HistoryResponse{UserID: userID, Pulls: hist})
	}
}
