package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmailRequired = errors.New("user: email is required")
	ErrInvalidEmail  = errors.New("user: invalid email")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ID string

type User struct {
	ID        ID
	Email     string
	Name      string
	CreatedAt time.Time
}

type Repository interface {
	// EmailExists matches case-insensitively.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// NormalizeEmail trims, lower-cases and validates an address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}
