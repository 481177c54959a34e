package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"perfil/internal/config"
	"perfil/internal/core/auth"
)

type AuthHandler struct {
	svc auth.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc auth.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		cfg: cfg,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		JSONError(w, http.StatusUnauthorized, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWTExpiry),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    res,
	})
}
