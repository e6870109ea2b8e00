package identity

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates no account matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates the email address is already registered.
	ErrUserExists = errors.New("user already exists")
)

// User represents a registered account holder.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
