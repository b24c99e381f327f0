package model

import (
	"fmt"
	"time"
)

// User represents an account that can sign in.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal returns the session identity of the user.
func (u *User) Principal() *Principal {
	return &Principal{UserID: u.ID, DisplayName: u.DisplayName, Email: u.Email}
}

// Principal is the identity of the signed-in user as seen by the lending core.
type Principal struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email"`
}

// BorrowerName is the display string recorded when this principal borrows
// an item: the display name, or the email when no display name is set.
func (p *Principal) BorrowerName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidatePassword checks password requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
