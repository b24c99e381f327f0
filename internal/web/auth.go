package web

import (
	"errors"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/session"
)

type authForm struct {
	PageData
	Email       string
	DisplayName string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &authForm{PageData: PageData{Title: "Sign in"}})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := &authForm{PageData: PageData{Title: "Sign in"}, Email: r.FormValue("email")}
	password := r.FormValue("password")

	if form.Email == "" || password == "" {
		form.Error = "Enter your email and password."
		s.Templates.RenderStatus(w, http.StatusBadRequest, "login.html", form)
		return
	}

	_, token, err := s.Sessions.Login(r.Context(), form.Email, password)
	if err != nil {
		status := http.StatusUnauthorized
		form.Error = "Wrong email or password."
		if !errors.Is(err, session.ErrInvalidCredentials) {
			status = http.StatusServiceUnavailable
			form.Error = "Signing in failed. Try again."
		}
		s.Templates.RenderStatus(w, status, "login.html", form)
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &authForm{PageData: PageData{Title: "Create account"}})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	form := &authForm{
		PageData:    PageData{Title: "Create account"},
		Email:       r.FormValue("email"),
		DisplayName: r.FormValue("display_name"),
	}

	_, token, err := s.Sessions.Register(r.Context(), form.Email, form.DisplayName, r.FormValue("password"))
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, session.ErrInvalidEmail):
			form.Error = "Enter a valid email address."
		case errors.Is(err, session.ErrWeakPassword):
			form.Error = "The password must be at least 8 characters."
		case errors.Is(err, session.ErrEmailTaken):
			status = http.StatusConflict
			form.Error = "An account with this email already exists."
		default:
			status = http.StatusServiceUnavailable
			form.Error = "Creating the account failed. Try again."
		}
		s.Templates.RenderStatus(w, status, "register.html", form)
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := GetWebClaims(r.Context()); claims != nil {
		if err := s.Sessions.Logout(r.Context(), claims); err != nil {
			s.Templates.RenderStatus(w, http.StatusServiceUnavailable, "login.html", &authForm{
				PageData: PageData{Title: "Sign in", User: claims.Principal(), Error: "Signing out failed. Try again."},
			})
			return
		}
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
