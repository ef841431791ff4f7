package handler

import (
	"net/http"

	"github.com/flexnotes/flexnotes-go/internal/core/service"
)

// handleRegister handles POST /auth/register. Registration doubles as
// a login: the response carries a fresh token pair.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp, err := h.authSvc.Register(r.Context(), &service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.UsersRegistered.Inc()
	}

	h.writeJSON(w, r, http.StatusCreated, &AuthResponse{
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
		Username:     resp.User.Username,
	})
}

// handleLogin handles POST /auth/login.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp, err := h.authSvc.Login(r.Context(), &service.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &AuthResponse{
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
		Username:     resp.User.Username,
	})
}

// handleRefresh handles POST /auth/refresh. An expired refresh token
// reports FN-AUTH-4012 so clients can tell it apart from a bad one.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := h.decode(r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	pair, err := h.authSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// handleAuthCheck handles GET /auth/check. Reaching this handler means
// the auth middleware accepted the bearer token.
func (h *Handler) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"username": user.Username})
}
