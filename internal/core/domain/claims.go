package domain

import (
	"context"
	"time"
)

// Claims is the identity carried inside a verified bearer token.
type Claims struct {
	UserID    int64
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claim's role is one of allowed. Nil claims and
// an empty role never match.
func (c *Claims) HasRole(allowed ...string) bool {
	if c == nil || c.Role == "" {
		return false
	}
	for _, r := range allowed {
		if c.Role == r {
			return true
		}
	}
	return false
}

type claimsKey struct{}

// ContextWithClaims returns a copy of ctx carrying the verified claims.
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the claims stored by ContextWithClaims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey{}).(*Claims)
	return c
}
