package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleContributor Role = "contributor"
	RoleTeamMember  Role = "team_member"
	RoleSuperAdmin  Role = "super_admin"
)

// Valid reports whether the role is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleContributor, RoleTeamMember, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a raw role string and reports whether it is a member
// of the closed role set. Unknown values fail closed.
func ParseRole(value string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape. Claims carries the
// raw claims document so role extraction can consult every claim location.
type Identity struct {
	UserID      string // stable user identifier (sub)
	DisplayName string
	Email       string
	Claims      map[string]any
	ExpiresAt   time.Time // absolute expiry from IdP token
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
// Claims is retained verbatim so the role can be re-derived fresh on every
// request rather than trusted from a stale snapshot.
type Session struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Claims      map[string]any `json:"claims,omitempty"`
	ExpiresAt   time.Time      `json:"expires_at"`
}

// Expired reports whether the session has passed its absolute expiry.
func (s Session) Expired() bool { return time.Now().After(s.ExpiresAt) }
