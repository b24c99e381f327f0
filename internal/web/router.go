package web

import (
	"database/sql"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/lending"
	"github.com/dg-does/Drag-Library/internal/session"
	webembed "github.com/dg-does/Drag-Library/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, svc *lending.Service, sessions *session.Provider) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		Sessions:  sessions,
		Service:   svc,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(sessions)
	optional := OptionalCookieAuth(sessions)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Account routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.Handle("POST /logout", optional(http.HandlerFunc(s.Logout)))

	// The item list is public; lending actions are checked by the controller.
	mux.Handle("GET /{$}", optional(http.HandlerFunc(s.ItemsPage)))
	mux.Handle("POST /items", optional(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("POST /items/{id}/borrow", optional(http.HandlerFunc(s.ItemBorrowSubmit)))
	mux.Handle("POST /items/{id}/return", optional(http.HandlerFunc(s.ItemReturnSubmit)))
	mux.Handle("GET /items/{id}/image", optional(http.HandlerFunc(s.ItemImageGet)))

	mux.Handle("GET /settings", cookieAuth(http.HandlerFunc(s.SettingsPage)))
	mux.Handle("POST /settings/profile", cookieAuth(http.HandlerFunc(s.ProfileSubmit)))
	mux.Handle("POST /settings/password", cookieAuth(http.HandlerFunc(s.PasswordSubmit)))

	return mux, nil
}
