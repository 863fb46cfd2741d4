package domain

import (
	"context"
	"strings"
	"time"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// ParseJobType matches case-insensitively.
func ParseJobType(s string) (JobType, bool) {
	switch JobType(strings.ToLower(s)) {
	case JobTypeFullTime:
		return JobTypeFullTime, true
	case JobTypePartTime:
		return JobTypePartTime, true
	case JobTypeContract:
		return JobTypeContract, true
	case JobTypeInternship:
		return JobTypeInternship, true
	}
	return "", false
}

type Job struct {
	ID          string    `json:"id"`
	EmployerID  string    `json:"employer_id"` // immutable
	// EmployerName is denormalized at creation and refreshed when the
	// employer renames their company.
	EmployerName string    `json:"employer_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Type         JobType   `json:"type"`
	Salary       *string   `json:"salary,omitempty"`
	Status       JobStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobFilter selects active jobs on the discovery path. Absent fields match
// everything; provided fields combine with AND.
type JobFilter struct {
	Keyword  string `json:"keyword,omitempty"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Matches implements the discovery matching semantics: keyword is a
// case-insensitive substring of title OR description OR employer name;
// location and type are case-insensitive exact matches.
func (f JobFilter) Matches(j *Job) bool {
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		hay := strings.ToLower(j.Title + " " + j.Description + " " + j.EmployerName)
		if !strings.Contains(hay, kw) {
			return false
		}
	}
	if f.Location != "" && !strings.EqualFold(f.Location, j.Location) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(f.Type, string(j.Type)) {
		return false
	}
	return true
}

// JobPage is one page of a filtered listing. Pages are 1-indexed.
type JobPage struct {
	Jobs       []Job `json:"jobs"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	// FetchActive returns the full active listing set, newest first.
	FetchActive(ctx context.Context) ([]Job, error)
	FetchByEmployer(ctx context.Context, employerID string) ([]Job, error)
	FetchAll(ctx context.Context, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	// UpdateEmployerName re-denormalizes the company name on all of an
	// employer's postings.
	UpdateEmployerName(ctx context.Context, employerID, name string) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, p *Principal, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	// GetActiveJob is the public read path; non-active jobs are NotFound.
	GetActiveJob(ctx context.Context, id string) (*Job, error)
	ListActive(ctx context.Context, filter JobFilter, page, perPage int) (*JobPage, error)
	ListByEmployer(ctx context.Context, p *Principal) ([]Job, error)
	UpdateJob(ctx context.Context, p *Principal, job *Job) error
	DeleteJob(ctx context.Context, p *Principal, id string) error
}
