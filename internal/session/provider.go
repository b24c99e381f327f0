package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dg-does/Drag-Library/internal/auth"
	"github.com/dg-does/Drag-Library/internal/model"
	"github.com/dg-does/Drag-Library/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = store.ErrEmailTaken
	ErrWeakPassword       = errors.New("password too short")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnknownUser        = errors.New("user no longer exists")
)

// Provider signs users in and out and tells the Notifier about it.
type Provider struct {
	DB       *sql.DB
	Secret   string
	Notifier *Notifier

	// HashCost is the bcrypt cost for new passwords. Zero means bcrypt.DefaultCost.
	HashCost int
}

// NewProvider returns a provider that issues tokens signed with secret.
func NewProvider(db *sql.DB, secret string, n *Notifier) *Provider {
	return &Provider{DB: db, Secret: secret, Notifier: n}
}

// Register creates an account and signs it in.
func (p *Provider) Register(ctx context.Context, email, displayName, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, "", ErrInvalidEmail
	}
	if err := model.ValidatePassword(password); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	hash, err := p.hash(password)
	if err != nil {
		return nil, "", err
	}
	user, err := store.CreateUser(ctx, p.DB, email, strings.TrimSpace(displayName), hash)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user registered", "user", user.Email, "id", user.ID)
	return p.signIn(user)
}

// Login checks the password and returns a fresh token.
func (p *Provider) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := store.GetUserByEmail(ctx, p.DB, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed", "email", email)
		return nil, "", ErrInvalidCredentials
	}
	return p.signIn(user)
}

// Authenticate validates a token and rejects revoked ones. The returned
// claims carry the user's current email and display name.
func (p *Provider) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ValidateToken(p.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(ctx, p.DB, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	// The profile may have changed since the token was issued.
	user, err := store.GetUser(ctx, p.DB, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrUnknownUser)
	}
	claims.Email = user.Email
	claims.DisplayName = user.DisplayName
	return claims, nil
}

// Logout revokes the token the claims came from.
func (p *Provider) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := p.revoke(ctx, claims); err != nil {
		return err
	}
	slog.Info("user logged out", "user", claims.Email)
	p.Notifier.Notify(Change{Kind: SignedOut, User: claims.Principal()})
	return nil
}

// UpdateProfile changes the display name. The old token is revoked and a
// new one carrying the new name is returned.
func (p *Provider) UpdateProfile(ctx context.Context, claims *auth.Claims, displayName string) (*model.User, string, error) {
	displayName = strings.TrimSpace(displayName)
	if err := store.UpdateUserDisplayName(ctx, p.DB, claims.UserID, displayName); err != nil {
		return nil, "", err
	}
	user, err := store.GetUser(ctx, p.DB, claims.UserID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUnknownUser
	}

	token, err := auth.GenerateToken(p.Secret, user.Principal())
	if err != nil {
		return nil, "", err
	}
	if err := p.revoke(ctx, claims); err != nil {
		return nil, "", err
	}

	slog.Info("user updated profile", "user", user.Email, "display_name", user.DisplayName)
	p.Notifier.Notify(Change{Kind: ProfileUpdated, User: user.Principal()})
	return user, token, nil
}

// ChangePassword replaces the password after checking the current one.
func (p *Provider) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := store.GetUser(ctx, p.DB, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if err := model.ValidatePassword(next); err != nil {
		return fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	hash, err := p.hash(next)
	if err != nil {
		return err
	}
	if err := store.UpdateUserPassword(ctx, p.DB, userID, hash); err != nil {
		return err
	}
	slog.Info("user changed own password", "user", user.Email)
	return nil
}

func (p *Provider) signIn(user *model.User) (*model.User, string, error) {
	token, err := auth.GenerateToken(p.Secret, user.Principal())
	if err != nil {
		return nil, "", err
	}
	slog.Info("user logged in", "user", user.Email)
	p.Notifier.Notify(Change{Kind: SignedIn, User: user.Principal()})
	return user, token, nil
}

func (p *Provider) revoke(ctx context.Context, claims *auth.Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return store.RevokeToken(ctx, p.DB, claims.ID, claims.ExpiresAt.Time)
}

func (p *Provider) hash(password string) (string, error) {
	cost := p.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
