package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainauth "staysia/internal/domain/auth"
)

func TestHostKeyChecker(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := hasher.Hash("open-sesame")
	require.NoError(t, err)
	checker := HostKeyChecker{Hash: hash, Hasher: hasher}

	assert.NoError(t, checker.Check("open-sesame"))
	assert.ErrorIs(t, checker.Check("wrong"), ErrHostKeyInvalid)
	assert.ErrorIs(t, checker.Check(" "), ErrHostKeyRequired)
	assert.ErrorIs(t, HostKeyChecker{}.Check("open-sesame"), ErrHostKeyInvalid)
}

func TestJWTVerifierRoundTrip(t *testing.T) {
	v := NewJWTVerifier("secret")
	token, err := v.Issue(domainauth.Session{UserID: "u-1", Email: "ayu@staysia.id", Name: "Ayu"}, time.Hour)
	require.NoError(t, err)

	session, err := v.Verify(context.Background(), domainauth.Token(token))
	require.NoError(t, err)
	assert.Equal(t, "u-1", string(session.UserID))
	assert.Equal(t, "ayu@staysia.id", session.Email)
	assert.False(t, session.Expired(time.Now()))
}

func TestJWTVerifierRejects(t *testing.T) {
	v := NewJWTVerifier("secret")
	past := time.Now().Add(-2 * time.Hour)
	v.now = func() time.Time { return past }
	expired, err := v.Issue(domainauth.Session{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)
	v.now = time.Now

	_, err = v.Verify(context.Background(), domainauth.Token(expired))
	assert.ErrorIs(t, err, domainauth.ErrTokenExpired)

	other, err := NewJWTVerifier("other").Issue(domainauth.Session{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), domainauth.Token(other))
	assert.ErrorIs(t, err, domainauth.ErrInvalidToken)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, domainauth.ErrTokenRequired)
}
