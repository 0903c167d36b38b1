package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/NihalNavath/Campus-Navigator/internal/api/middleware"
	"github.com/NihalNavath/Campus-Navigator/internal/api/problem"
	"github.com/NihalNavath/Campus-Navigator/internal/auth"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	Auth       *auth.Authenticator
	SessionTTL time.Duration
	Env        string
	// SecureCookies marks session cookies Secure; enabled in production.
	SecureCookies bool

	validate *validator.Validate
}

func NewAuthHandler(authenticator *auth.Authenticator, sessionTTL time.Duration, env string, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		Auth:          authenticator,
		SessionTTL:    sessionTTL,
		Env:           env,
		SecureCookies: secureCookies,
		validate:      validator.New(),
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userInfo struct {
	Username string `json:"username"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	User    userInfo `json:"user"`
}

// Login handles POST /api/auth/login.
// On success the session token travels back as an HttpOnly cookie whose max
// age equals the server-side session TTL.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.Auth == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	// An unreadable body is an unexpected failure, not a validation failure;
	// field-level checks below produce the 400s.
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Username and password are required", err, h.Env)
		return
	}

	if !h.Auth.VerifyCredentials(req.Username, req.Password) {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Invalid credentials", nil, h.Env)
		return
	}

	token, err := h.Auth.CreateSession()
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	auth.SetSessionCookie(w, token, h.SessionTTL, h.SecureCookies)
	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    userInfo{Username: req.Username},
	})
}

// Logout handles POST /api/auth/logout.
// Deleting an unknown or absent token is fine; logout always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.Auth != nil {
		if token := auth.TokenFromRequest(r); token != "" {
			h.Auth.DeleteSession(token)
		}
	}

	auth.ClearSessionCookie(w, h.SecureCookies)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me handles GET /api/auth/me behind SessionAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          userInfo{Username: session.Username},
	})
}
