package api

import (
	"database/sql"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/lending"
	"github.com/dg-does/Drag-Library/internal/session"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, svc *lending.Service, sessions *session.Provider) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Sessions: sessions}
	itemsHandler := &ItemsHandler{DB: db, Service: svc}

	authMW := AuthMiddleware(sessions)
	optional := OptionalAuth(sessions)

	// Public: account creation and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated account routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("PUT /api/auth/profile", authMW(http.HandlerFunc(authHandler.UpdateProfile)))

	// Items: anyone may read; addresses are only shown to signed-in users.
	mux.Handle("GET /api/items", optional(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/items/{id}", optional(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("GET /api/items/{id}/image", optional(http.HandlerFunc(itemsHandler.GetImage)))
	mux.Handle("GET /api/items/{id}/history", optional(http.HandlerFunc(itemsHandler.GetHistory)))

	// Writes go through the lending controller, which rejects anonymous callers.
	mux.Handle("POST /api/items", optional(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("POST /api/items/{id}/borrow", optional(http.HandlerFunc(itemsHandler.Borrow)))
	mux.Handle("POST /api/items/{id}/return", optional(http.HandlerFunc(itemsHandler.Return)))

	return mux
}
