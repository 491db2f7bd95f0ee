package handler

import (
	"net/http"

	"github.com/xtding233/gacha-bot/internal/reward"
)

// SignInRequest is the body of POST /api/v1/rewards/sign-in
type SignInRequest struct {
	UserID string `json:"user_id" validate:"required,max=64,excludesall=/ "`
}

// RedeemRequest is the body of POST /api/v1/rewards/redeem
type RedeemRequest struct {
	UserID string `json:"user_id" validate:"required,max=64,excludesall=/ "`
	Code   string `json:"code" validate:"required,max=64"`
}

// HandleSignIn grants the daily sign-in reward.
func HandleSignIn(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignInRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			return
		}
		g, err := svc.SignIn(r.Context(), req.UserID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			logServiceError(r, err, status, "sign_in", "user_id", req.UserID)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, g)
	}
}

// HandleRedeem exchanges a redeem code for diamonds.
func HandleRedeem(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RedeemRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			return
		}
		g, err := svc.Redeem(r.Context(), req.UserID, req.Code)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			logServiceError(r, err, status, "redeem", "user_id", req.UserID)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, g)
	}
}
