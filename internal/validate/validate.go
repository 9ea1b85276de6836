// Package validate implements the client-side form constraints that are
// checked before any network call is made.
package validate

import (
	"regexp"
	"strings"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks that the value looks like an email address.
func Email(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ValidationError{Field: field, Message: "Email is required"}
	}
	if !emailRe.MatchString(value) {
		return &domain.ValidationError{Field: field, Message: "Please enter a valid email address"}
	}
	return nil
}

// Password checks the minimum password length.
func Password(field, value string) error {
	if value == "" {
		return &domain.ValidationError{Field: field, Message: "Password is required"}
	}
	if len(value) < MinPasswordLen {
		return &domain.ValidationError{Field: field, Message: "Password must be at least 8 characters"}
	}
	return nil
}

// Required checks that a field is non-empty.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// Login validates a login form.
func Login(email, password string) error {
	if err := Email("email", email); err != nil {
		return err
	}
	return Password("password", password)
}

// Signup validates a signup form.
func Signup(req domain.SignupRequest) error {
	if err := Required("name", req.Name); err != nil {
		return err
	}
	if err := Email("email", req.Email); err != nil {
		return err
	}
	if err := Password("password", req.Password); err != nil {
		return err
	}
	return Required("role", req.Role)
}
