package domain_test

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	candidate := &domain.Principal{ID: "u1", Role: domain.RoleCandidate}
	employer := &domain.Principal{ID: "u2", Role: domain.RoleEmployer}
	admin := &domain.Principal{ID: "u3", Role: domain.RoleAdmin}

	t.Run("Nil principal is unauthenticated", func(t *testing.T) {
		assert.Equal(t, domain.DenyUnauthenticated, domain.Authorize(nil, domain.RoleCandidate))
	})

	t.Run("Empty ID is unauthenticated", func(t *testing.T) {
		assert.Equal(t, domain.DenyUnauthenticated, domain.Authorize(&domain.Principal{Role: domain.RoleAdmin}))
	})

	t.Run("No required roles admits any authenticated principal", func(t *testing.T) {
		assert.Equal(t, domain.Allow, domain.Authorize(candidate))
		assert.Equal(t, domain.Allow, domain.Authorize(employer))
		assert.Equal(t, domain.Allow, domain.Authorize(admin))
	})

	t.Run("Matching role is allowed", func(t *testing.T) {
		assert.Equal(t, domain.Allow, domain.Authorize(candidate, domain.RoleCandidate))
		assert.Equal(t, domain.Allow, domain.Authorize(employer, domain.RoleEmployer, domain.RoleAdmin))
	})

	t.Run("Wrong role is denied, not unauthenticated", func(t *testing.T) {
		assert.Equal(t, domain.DenyWrongRole, domain.Authorize(candidate, domain.RoleEmployer))
		assert.Equal(t, domain.DenyWrongRole, domain.Authorize(employer, domain.RoleCandidate))
	})

	t.Run("Admin has no implicit access to role-scoped operations", func(t *testing.T) {
		assert.Equal(t, domain.DenyWrongRole, domain.Authorize(admin, domain.RoleCandidate))
	})
}

func TestParseRole(t *testing.T) {
	for _, input := range []string{"candidate", "Candidate", "EMPLOYER", "admin"} {
		_, ok := domain.ParseRole(input)
		assert.True(t, ok, input)
	}

	for _, input := range []string{"", "superuser", "candidates"} {
		_, ok := domain.ParseRole(input)
		assert.False(t, ok, input)
	}
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, (*domain.Principal)(nil).IsAdmin())
	assert.False(t, (&domain.Principal{ID: "u1", Role: domain.RoleEmployer}).IsAdmin())
	assert.True(t, (&domain.Principal{ID: "u1", Role: domain.RoleAdmin}).IsAdmin())
}
