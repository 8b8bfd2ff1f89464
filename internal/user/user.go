package user

import "errors"

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when another account already uses the e-mail.
	ErrEmailTaken = errors.New("e-mail already registered")

	// ErrInvalidCredentials is returned when the e-mail/password pair does
	// not match an account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingFields is returned when a required input field is absent.
	ErrMissingFields = errors.New("missing required fields")
)

// User is an account that owns transactions.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}
