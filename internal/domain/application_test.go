package domain_test

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to domain.ApplicationStatus
		want     bool
	}{
		{domain.ApplicationStatusPending, domain.ApplicationStatusShortlisted, true},
		{domain.ApplicationStatusPending, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusShortlisted, true},

		// nothing ever goes back to pending
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusPending, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusPending, false},
		{domain.ApplicationStatusPending, domain.ApplicationStatusPending, false},

		// no-op transitions are rejected
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusShortlisted, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusRejected, false},

		// unknown targets are rejected
		{domain.ApplicationStatusPending, domain.ApplicationStatus("hired"), false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, domain.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestParseApplicationStatus(t *testing.T) {
	s, ok := domain.ParseApplicationStatus("Shortlisted")
	assert.True(t, ok)
	assert.Equal(t, domain.ApplicationStatusShortlisted, s)

	_, ok = domain.ParseApplicationStatus("hired")
	assert.False(t, ok)
}

func TestCVKeys(t *testing.T) {
	assert.Equal(t, "cvs/u1/resume.pdf", domain.ProfileCVKey("u1"))
	assert.Equal(t, "applications/a1/resume.pdf", domain.ApplicationCVKey("a1"))
}
