package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dg-does/Drag-Library/internal/auth"
	"github.com/dg-does/Drag-Library/internal/model"
	"github.com/dg-does/Drag-Library/internal/session"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware requires a valid, unrevoked bearer token and adds its
// claims to the context.
func AuthMiddleware(sessions *session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				jsonError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			claims, ok := authenticate(w, r, sessions, strings.TrimPrefix(header, "Bearer "))
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// OptionalAuth lets requests without an Authorization header through as
// anonymous. A header that is present must still carry a valid token.
func OptionalAuth(sessions *session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(header, "Bearer ") {
				jsonError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, ok := authenticate(w, r, sessions, strings.TrimPrefix(header, "Bearer "))
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, sessions *session.Provider, token string) (*auth.Claims, bool) {
	claims, err := sessions.Authenticate(r.Context(), token)
	switch {
	case errors.Is(err, session.ErrInvalidToken), errors.Is(err, session.ErrTokenRevoked):
		jsonError(w, http.StatusUnauthorized, "invalid token")
		return nil, false
	case err != nil:
		slog.Error("failed to check token revocation", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "cannot verify session")
		return nil, false
	}
	return claims, true
}

// GetClaims retrieves the JWT claims from the context.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// currentUser returns the signed-in principal, or nil for anonymous requests.
func currentUser(ctx context.Context) *model.Principal {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Principal()
	}
	return nil
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		}
		if rec.status >= http.StatusInternalServerError {
			slog.Error("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	})
}
