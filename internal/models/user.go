// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a directory user with authentication and optional 2FA fields.
// Users register once and own the businesses and reviews they create.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // Never serialize the hash
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	TOTPSecret      *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled     bool      `json:"totpEnabled"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Needs2FAVerify returns true if the user must pass a TOTP check before
// the session is fully authenticated. 2FA is opt-in.
func (u *User) Needs2FAVerify() bool {
	return u.TOTPEnabled
}
