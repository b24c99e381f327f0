package web

import (
	"errors"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/session"
)

type settingsPage struct {
	PageData
	DisplayName string
}

func (s *Server) settings(r *http.Request) *settingsPage {
	user := currentUser(r.Context())
	return &settingsPage{
		PageData:    PageData{Title: "Settings", User: user},
		DisplayName: user.DisplayName,
	}
}

// SettingsPage handles GET /settings.
func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "settings.html", s.settings(r))
}

// ProfileSubmit handles POST /settings/profile. The cookie is replaced
// with a token carrying the new display name.
func (s *Server) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	page := s.settings(r)

	user, token, err := s.Sessions.UpdateProfile(r.Context(), GetWebClaims(r.Context()), r.FormValue("display_name"))
	if err != nil {
		page.DisplayName = r.FormValue("display_name")
		page.Error = "Saving the display name failed."
		s.Templates.RenderStatus(w, http.StatusServiceUnavailable, "settings.html", page)
		return
	}

	setAuthCookie(w, token)
	page.User = user.Principal()
	page.DisplayName = user.DisplayName
	page.Success = "Display name saved."
	s.Templates.Render(w, "settings.html", page)
}

// PasswordSubmit handles POST /settings/password.
func (s *Server) PasswordSubmit(w http.ResponseWriter, r *http.Request) {
	page := s.settings(r)

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	if current == "" || next == "" {
		page.Error = "Enter the current and the new password."
		s.Templates.RenderStatus(w, http.StatusBadRequest, "settings.html", page)
		return
	}

	err := s.Sessions.ChangePassword(r.Context(), page.User.UserID, current, next)
	switch {
	case err == nil:
		page.Success = "Password changed."
		s.Templates.Render(w, "settings.html", page)
	case errors.Is(err, session.ErrInvalidCredentials):
		page.Error = "The current password is wrong."
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "settings.html", page)
	case errors.Is(err, session.ErrWeakPassword):
		page.Error = "The new password must be at least 8 characters."
		s.Templates.RenderStatus(w, http.StatusBadRequest, "settings.html", page)
	default:
		page.Error = "Changing the password failed."
		s.Templates.RenderStatus(w, http.StatusServiceUnavailable, "settings.html", page)
	}
}
