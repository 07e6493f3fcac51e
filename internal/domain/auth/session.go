package auth

import (
	"context"
	"errors"
	"time"

	"staysia/internal/domain/user"
)

var (
	ErrTokenRequired = errors.New("auth: token is required")
	ErrInvalidToken  = errors.New("auth: invalid token")
	ErrTokenExpired  = errors.New("auth: token expired")
)

type Token string

// Session is a signed-in visitor as asserted by the external auth service.
type Session struct {
	UserID    user.ID
	Email     string
	Name      string
	ExpiresAt time.Time
}

func (s Session) Expired(at time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !s.ExpiresAt.After(at.UTC())
}

// Verifier validates bearer tokens issued elsewhere. Session issuance is not handled here.
type Verifier interface {
	Verify(ctx context.Context, token Token) (Session, error)
}
