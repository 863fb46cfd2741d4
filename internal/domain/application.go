package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// ParseApplicationStatus matches case-insensitively.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(strings.ToLower(s)) {
	case ApplicationStatusPending:
		return ApplicationStatusPending, true
	case ApplicationStatusShortlisted:
		return ApplicationStatusShortlisted, true
	case ApplicationStatusRejected:
		return ApplicationStatusRejected, true
	}
	return "", false
}

// CanTransition reports whether an employer decision from → to is legal.
// Every application starts pending; shortlisted and rejected may be
// reversed into each other, but nothing ever goes back to pending.
func CanTransition(from, to ApplicationStatus) bool {
	if to == ApplicationStatusPending || to == from {
		return false
	}
	return to == ApplicationStatusShortlisted || to == ApplicationStatusRejected
}

// ErrDuplicateApplication is returned by the store when the
// (candidate, job) uniqueness constraint rejects a second application.
var ErrDuplicateApplication = errors.New("application already exists for this candidate and job")

// Application is a candidate's submission against a job. Job title and
// employer identity are denormalized at submission time so the record
// survives later job mutation or deletion.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`       // immutable
	CandidateID    string            `json:"candidate_id"` // immutable
	EmployerID     string            `json:"employer_id"`  // denormalized from job, immutable
	CandidateName  string            `json:"candidate_name"`
	CandidateEmail string            `json:"candidate_email"`
	JobTitle       string            `json:"job_title"`
	EmployerName   string            `json:"employer_name"`
	Message        *string           `json:"message,omitempty"`
	// CVUrl points at the canonical profile CV or, when a file was
	// supplied with the submission, an immutable per-application snapshot.
	CVUrl     string            `json:"cv_url"`
	CVName    string            `json:"cv_name,omitempty"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// ApplicationForm carries the submission payload.
type ApplicationForm struct {
	Name    string
	Email   string
	Message string
	CV      *CVUpload // optional; canonical profile CV is used when absent
}

// JobApplicationStats is the derived per-job view for employer dashboards.
// It is computed from the application set, never persisted.
type JobApplicationStats struct {
	JobID       string `json:"job_id"`
	JobTitle    string `json:"job_title"`
	Total       int    `json:"total"`
	Pending     int    `json:"pending"`
	Shortlisted int    `json:"shortlisted"`
	Rejected    int    `json:"rejected"`
}

type ApplicationRepository interface {
	// Create returns ErrDuplicateApplication when the storage-level
	// (candidate_id, job_id) uniqueness constraint rejects the write.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	GetByEmployer(ctx context.Context, employerID string) ([]Application, error)
	Exists(ctx context.Context, candidateID, jobID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus) error
	// AttachCV swaps in the per-application snapshot reference after the
	// snapshot object has been stored.
	AttachCV(ctx context.Context, id, cvURL, cvName string) error
	CountAll(ctx context.Context) (int64, error)
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, p *Principal, jobID string, form *ApplicationForm) (*Application, error)
	HasApplied(ctx context.Context, p *Principal, jobID string) (bool, error)
	ListForCandidate(ctx context.Context, p *Principal) ([]Application, error)
	GetApplication(ctx context.Context, p *Principal, id string) (*Application, error)

	// Employer operations
	ListForEmployer(ctx context.Context, p *Principal) ([]Application, error)
	StatsForEmployer(ctx context.Context, p *Principal) ([]JobApplicationStats, error)
	SetStatus(ctx context.Context, p *Principal, id string, status ApplicationStatus) error
	// CVDownloadURL returns a fresh short-lived URL for the applicant's CV.
	CVDownloadURL(ctx context.Context, p *Principal, id string) (string, error)
}
