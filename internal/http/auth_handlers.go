package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"redviva-data/internal/auth"
)

// AuthHandler proxies the hosted auth service so the browser talks to a
// single origin. Credentials pass through; nothing is stored here.
type AuthHandler struct {
	client *auth.Client
	logger *zap.Logger
}

func NewAuthHandler(client *auth.Client, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{client: client, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, Fail("email and password are required"))
		return
	}

	tokens, err := h.client.PasswordLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(tokens))
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) MagicLink(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil || strings.TrimSpace(req.Email) == "" {
		writeJSON(w, http.StatusBadRequest, Fail("email is required"))
		return
	}
	if err := h.client.SendMagicLink(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		writeJSON(w, http.StatusBadGateway, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"sent": true}))
}

type callbackRequest struct {
	Code string `json:"code"`
}

// Callback exchanges the redirect code from a magic link for a session.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req callbackRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, Fail("code is required"))
		return
	}
	tokens, err := h.client.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(tokens))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, FailCode(ResultTokenExpired, "session required"))
		return
	}
	if err := h.client.SignOut(r.Context(), token); err != nil {
		writeJSON(w, http.StatusBadGateway, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"signed_out": true}))
}

type passwordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, FailCode(ResultTokenExpired, "session required"))
		return
	}
	var req passwordRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil || len(req.NewPassword) < 8 {
		writeJSON(w, http.StatusBadRequest, Fail("new password must be at least 8 characters"))
		return
	}
	if err := h.client.UpdatePassword(r.Context(), token, req.NewPassword); err != nil {
		writeJSON(w, http.StatusBadGateway, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"updated": true}))
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil || strings.TrimSpace(req.Email) == "" {
		writeJSON(w, http.StatusBadRequest, Fail("email is required"))
		return
	}
	if err := h.client.SendPasswordReset(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		writeJSON(w, http.StatusBadGateway, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"sent": true}))
}
