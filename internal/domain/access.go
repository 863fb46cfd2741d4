package domain

import "strings"

// Role is the closed set of account roles. A user's role is fixed at
// registration and never migrated.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ParseRole returns the matching Role, case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(s)) {
	case RoleCandidate:
		return RoleCandidate, true
	case RoleEmployer:
		return RoleEmployer, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Principal is the authenticated identity resolved for the current request.
// It is built once per request by the auth middleware and passed explicitly
// to every protected operation.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyWrongRole
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyWrongRole:
		return "deny_wrong_role"
	}
	return "unknown"
}

// Authorize is the access gate: a pure predicate over the resolved
// principal. With no required roles any authenticated principal passes.
// It performs no redirects and caches nothing; callers re-evaluate it at
// every protected entry point.
func Authorize(p *Principal, required ...Role) Decision {
	if p == nil || p.ID == "" {
		return DenyUnauthenticated
	}
	if len(required) == 0 {
		return Allow
	}
	for _, r := range required {
		if p.Role == r {
			return Allow
		}
	}
	return DenyWrongRole
}
