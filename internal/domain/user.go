package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

type User struct {
	ID        string    `json:"id"` // identity provider UUID
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"` // immutable after registration
	CreatedAt time.Time `json:"created_at"`
}

// AccountSnapshot is the identity resolver's output: the user record plus
// the role-specific profile. A missing profile is returned as an empty
// default shape, not an error.
type AccountSnapshot struct {
	User      *User             `json:"user"`
	Candidate *CandidateProfile `json:"candidate_profile,omitempty"`
	Employer  *EmployerProfile  `json:"employer_profile,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateName(ctx context.Context, id, name string) error
}

type AuthUsecase interface {
	// EnsureUserExists creates the identity record on first registration.
	// The role is fixed from the registration payload; for an existing
	// record the stored role always wins.
	EnsureUserExists(ctx context.Context, user *User) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	// ResolveSnapshot merges the role-specific profile into the identity.
	ResolveSnapshot(ctx context.Context, p *Principal) (*AccountSnapshot, error)
}
