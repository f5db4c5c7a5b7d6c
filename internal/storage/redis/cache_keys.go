package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	RoleCacheTTL       = 30 * time.Minute
	RateLimitWindowTTL = 1 * time.Minute
)

func SessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func RoleKey(userID string) string {
	return fmt.Sprintf("role:user:%s", userID)
}

func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:ip:%s", clientIP)
}

// Session is the payload stored per opaque token.
type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Cache) SetSession(ctx context.Context, token string, session *Session, ttl time.Duration) error {
	return c.Set(ctx, SessionKey(token), session, ttl)
}

func (c *Cache) GetSession(ctx context.Context, token string) (*Session, error) {
	var session Session
	if err := c.Get(ctx, SessionKey(token), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	return c.Delete(ctx, SessionKey(token))
}

// Cached role is the single source of truth for role lookups between
// onboarding changes; it is invalidated on role change and logout.
func (c *Cache) SetRole(ctx context.Context, userID, role string) error {
	return c.SetString(ctx, RoleKey(userID), role, RoleCacheTTL)
}

func (c *Cache) GetRole(ctx context.Context, userID string) (string, error) {
	return c.GetString(ctx, RoleKey(userID))
}

func (c *Cache) InvalidateRole(ctx context.Context, userID string) error {
	return c.Delete(ctx, RoleKey(userID))
}

func (c *Cache) IncrementRateLimit(ctx context.Context, clientIP string) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(clientIP), RateLimitWindowTTL)
}
