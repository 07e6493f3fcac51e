package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	domainauth "staysia/internal/domain/auth"
	"staysia/internal/infra/security"
)

const (
	sessionContextKey = "staysia.session"
	HostKeyHeader     = "X-Host-Key"
)

// AuthMiddleware resolves an optional bearer session. Anonymous requests pass through untouched.
type AuthMiddleware struct {
	Verifier domainauth.Verifier
	Logger   *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Verifier == nil {
		c.Next()
		return
	}
	session, err := m.Verifier.Verify(c.Request.Context(), domainauth.Token(token))
	if err != nil {
		if m.Logger != nil {
			m.Logger.Debug("session token rejected", "error", err)
		}
		c.Next()
		return
	}
	c.Set(sessionContextKey, session)
	c.Next()
}

func currentSession(c *gin.Context) (domainauth.Session, bool) {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return domainauth.Session{}, false
	}
	s, ok := val.(domainauth.Session)
	return s, ok
}

// requireSession answers 401 with a sign-in redirect that returns the visitor to returnTo.
func requireSession(c *gin.Context, returnTo string) (domainauth.Session, bool) {
	s, ok := currentSession(c)
	if !ok || strings.TrimSpace(string(s.UserID)) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "sign in required",
			"code":     CodeUnauthenticated,
			"redirect": "/auth?redirect=" + returnTo,
		})
		return domainauth.Session{}, false
	}
	return s, true
}

// HostKey guards host write endpoints.
func HostKey(checker security.HostKeyChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := checker.Check(c.GetHeader(HostKeyHeader))
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, security.ErrHostKeyRequired):
			writeError(c, http.StatusUnauthorized, CodeHostKeyRequired, "host key required")
		default:
			writeError(c, http.StatusForbidden, CodeHostKeyInvalid, "host key invalid")
		}
	}
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
