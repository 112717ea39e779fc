package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// User models an account that can authenticate against the API.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one the system knows about.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// NormalizeUsername returns the canonical form used for storage and lookup:
// surrounding space trimmed, NFKC-normalized and Unicode case-folded, so
// "Bob", "BOB" and "ｂｏｂ" all collide. A Caser is stateful, so one is built per call.
func NormalizeUsername(username string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(username)))
}
