package security

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "staysia/internal/domain/auth"
	domainuser "staysia/internal/domain/user"
)

const sessionIssuer = "staysia-auth"

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 session tokens issued by the auth service.
type JWTVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), now: time.Now}
}

func (v *JWTVerifier) Verify(_ context.Context, token domainauth.Token) (domainauth.Session, error) {
	raw := strings.TrimSpace(string(token))
	if raw == "" {
		return domainauth.Session{}, domainauth.ErrTokenRequired
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domainauth.Session{}, domainauth.ErrTokenExpired
		}
		return domainauth.Session{}, domainauth.ErrInvalidToken
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return domainauth.Session{}, domainauth.ErrInvalidToken
	}
	session := domainauth.Session{
		UserID: domainuser.ID(claims.Subject),
		Email:  claims.Email,
		Name:   claims.Name,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return session, nil
}

// Issue signs a session token. The auth service owns issuance; this is used by local tooling and tests.
func (v *JWTVerifier) Issue(session domainauth.Session, ttl time.Duration) (string, error) {
	now := v.now()
	claims := sessionClaims{
		Email: session.Email,
		Name:  session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(session.UserID),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

var _ domainauth.Verifier = (*JWTVerifier)(nil)
