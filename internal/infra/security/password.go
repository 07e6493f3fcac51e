package security

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHostKeyRequired = errors.New("security: host key required")
	ErrHostKeyInvalid  = errors.New("security: host key invalid")
)

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(secret string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Compare(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}

func (h BcryptHasher) cost() int {
	if h.Cost >= bcrypt.MinCost {
		return h.Cost
	}
	return bcrypt.DefaultCost
}

// HostKeyChecker guards host write endpoints with a shared key stored as a bcrypt hash.
type HostKeyChecker struct {
	Hash   string
	Hasher BcryptHasher
}

// Enabled reports whether a hash is configured. Without one host endpoints stay closed.
func (c HostKeyChecker) Enabled() bool {
	return strings.TrimSpace(c.Hash) != ""
}

func (c HostKeyChecker) Check(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrHostKeyRequired
	}
	if !c.Enabled() {
		return ErrHostKeyInvalid
	}
	if err := c.Hasher.Compare(c.Hash, key); err != nil {
		return ErrHostKeyInvalid
	}
	return nil
}
