package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dg-does/Drag-Library/internal/auth"
	"github.com/dg-does/Drag-Library/internal/model"
	"github.com/dg-does/Drag-Library/internal/session"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

const cookieName = "token"

// CookieAuthMiddleware requires a valid, unrevoked token cookie and adds its
// claims to the context. Anyone else is sent to the login page.
func CookieAuthMiddleware(sessions *session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := cookieClaims(w, r, sessions)
			if claims == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), webClaimsKey, claims)))
		})
	}
}

// OptionalCookieAuth adds claims to the context when a valid cookie is
// present and otherwise serves the page anonymously.
func OptionalCookieAuth(sessions *session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := cookieClaims(w, r, sessions); claims != nil {
				r = r.WithContext(context.WithValue(r.Context(), webClaimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// cookieClaims returns the claims of the request's token cookie. A cookie
// that no longer validates is cleared.
func cookieClaims(w http.ResponseWriter, r *http.Request, sessions *session.Provider) *auth.Claims {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := sessions.Authenticate(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, session.ErrInvalidToken) && !errors.Is(err, session.ErrTokenRevoked) {
			slog.Error("failed to check token revocation", "error", err)
		}
		clearAuthCookie(w)
		return nil
	}
	return claims
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetWebClaims retrieves the JWT claims from web context.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}

// currentUser returns the signed-in principal, or nil for anonymous visitors.
func currentUser(ctx context.Context) *model.Principal {
	if claims := GetWebClaims(ctx); claims != nil {
		return claims.Principal()
	}
	return nil
}
