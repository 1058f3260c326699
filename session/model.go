package session

import (
	"strings"

	"github.com/hireloop/authgate/role"
)

// Account is the cached, read-only snapshot of a backend identity record.
// The backend owns the record; this side never mutates roles.
type Account struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	AvatarURL string      `json:"avatarUrl,omitempty"`
	Roles     []role.Role `json:"roles"`
}

// NormalizeEmail lowercases an email address. Emails are case-insensitive
// and normalized at submission time, before they reach the backend.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Session pairs an account snapshot with the access token issued for it.
// The refresh token is never part of a Session: it lives in an HTTP-only
// cookie readable only by the edge guard's cookie counterpart.
type Session struct {
	Account     Account
	AccessToken string
}

// Valid reports whether the session satisfies the authentication invariant:
// account and access token simultaneously present. Partial state is treated
// as logged out by every consumer.
func (s *Session) Valid() bool {
	return s != nil && s.Account.ID != "" && s.AccessToken != ""
}

// Roles returns the account's role set in insertion order, or nil for an
// invalid session.
func (s *Session) Roles() []role.Role {
	if !s.Valid() {
		return nil
	}
	return s.Account.Roles
}
