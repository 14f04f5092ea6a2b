package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrEmailTaken is returned by the repository when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// Account is the single credential record of the site owner.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the subset of Account that may leave the server.
type PublicProfile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

// Public returns the profile without the password hash.
func (a *Account) Public() PublicProfile {
	return PublicProfile{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		ProfileImage: a.ProfileImage,
	}
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate validates the account for persistence. Returns an error describing the first validation failure.
func (a *Account) Validate() error {
	if a.ID == "" {
		return errors.New("id is required")
	}
	if a.Email == "" {
		return errors.New("email is required")
	}
	if a.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
