package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/model"
	"github.com/dg-does/Drag-Library/internal/session"
	"github.com/dg-does/Drag-Library/internal/store"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	Sessions *session.Provider
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, token, err := h.Sessions.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, token, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), GetClaims(r.Context())); err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	user, err := store.GetUser(r.Context(), h.Sessions.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusUnauthorized, session.ErrUnknownUser.Error())
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		jsonError(w, http.StatusBadRequest, "current and new password required")
		return
	}

	claims := GetClaims(r.Context())
	if err := h.Sessions.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			jsonError(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// UpdateProfile handles PUT /api/auth/profile. The response carries a new
// token; the one used for this request is revoked.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.Sessions.UpdateProfile(r.Context(), GetClaims(r.Context()), req.DisplayName)
	if err != nil {
		sessionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

// sessionError maps a session failure to its HTTP status.
func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, session.ErrUnknownUser):
		jsonError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, session.ErrInvalidEmail), errors.Is(err, session.ErrWeakPassword):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrEmailTaken):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("session operation failed", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "session store unavailable")
	}
}
