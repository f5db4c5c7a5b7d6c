package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hirehub/internal/auth"
	"hirehub/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey = "identity"
	tokenKey    = "session_token"

	// SessionCookie is the fallback token carrier for browser clients.
	SessionCookie = "hirehub_session"
)

// SessionResolver resolves a session token to the calling identity.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (*auth.Identity, error)
}

// Session resolves the bearer token (or session cookie) when present and
// stores the identity in the request context. Anonymous requests pass
// through; the Require* guards decide what needs a login.
func Session(resolver SessionResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := resolver.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) {
				logger.Error("failed to resolve session", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// Identity returns the resolved caller, or nil for anonymous requests.
func Identity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	return v.(*auth.Identity)
}

// Token returns the session token the caller presented.
func Token(c *gin.Context) string {
	v, ok := c.Get(tokenKey)
	if !ok {
		return ""
	}
	return v.(string)
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Identity(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

func RequireRecruiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if !identity.IsRecruiter() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "recruiter role required",
			})
			return
		}
		c.Next()
	}
}

// RequireCandidate admits signed-in users whose role is not recruiter. An
// absent role takes the candidate path by default.
func RequireCandidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if identity.Role == models.RoleRecruiter {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "recruiters cannot perform this action",
			})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie
}
