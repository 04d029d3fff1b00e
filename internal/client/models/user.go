// Package models defines the client-side data model: the authenticated user,
// the session value published by the session manager, goals and workouts,
// plus the local validation applied before anything reaches the network.
package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// User is the cached read-model of the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Registration is the sign-up form. Confirm is optional; when set it must
// match Password.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Confirm  string `json:"-"`
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the shape of an address: something@domain.tld.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return common.NewValidationError("email", "invalid email format")
	}
	return nil
}

// Validate runs the sign-up checks: email shape, minimal password length and
// password confirmation.
func (r Registration) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Password) < common.MinPasswordLength {
		return common.NewValidationError("password", "password must be at least 8 characters long")
	}
	if r.Confirm != "" && r.Confirm != r.Password {
		return common.NewValidationError("confirm", "passwords do not match")
	}
	return nil
}
