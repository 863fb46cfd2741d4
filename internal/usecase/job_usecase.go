package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

const DefaultJobsPerPage = 9

type jobUsecase struct {
	jobRepo      domain.JobRepository
	employerRepo domain.EmployerRepository
	perPage      int
}

func NewJobUsecase(jobRepo domain.JobRepository, employerRepo domain.EmployerRepository, perPage int) domain.JobUsecase {
	if perPage < 1 {
		perPage = DefaultJobsPerPage
	}
	return &jobUsecase{
		jobRepo:      jobRepo,
		employerRepo: employerRepo,
		perPage:      perPage,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, p *domain.Principal, job *domain.Job) error {
	if d := domain.Authorize(p, domain.RoleEmployer, domain.RoleAdmin); d != domain.Allow {
		return gateError(d, "Only employers or admins can create jobs")
	}

	if err := validateJobFields(job); err != nil {
		return err
	}

	// Denormalize the company name at creation time so listings render
	// without a join.
	employerName := p.Name
	profile, err := u.employerRepo.GetByUserID(ctx, p.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if profile != nil && profile.CompanyName != "" {
		employerName = profile.CompanyName
	}

	now := time.Now()
	job.ID = uuid.New().String()
	job.EmployerID = p.ID
	job.EmployerName = employerName
	job.Status = domain.JobStatusActive
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func validateJobFields(job *domain.Job) error {
	if job.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if job.Description == "" {
		return apperror.BadRequest("Description is required")
	}
	if job.Location == "" {
		return apperror.BadRequest("Location is required")
	}
	jt, ok := domain.ParseJobType(string(job.Type))
	if !ok {
		return apperror.BadRequest("Type must be one of: full-time, part-time, contract, internship")
	}
	job.Type = jt
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// GetActiveJob is the public read path. Closed jobs are indistinguishable
// from absent ones.
func (u *jobUsecase) GetActiveJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

// ListActive runs the discovery path: filter the active set, then slice
// one 1-indexed page out of it. Concatenating pages 1..TotalPages yields
// the filtered set exactly once.
func (u *jobUsecase) ListActive(ctx context.Context, filter domain.JobFilter, page, perPage int) (*domain.JobPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = u.perPage
	}

	active, err := u.jobRepo.FetchActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	filtered := make([]domain.Job, 0, len(active))
	for i := range active {
		if filter.Matches(&active[i]) {
			filtered = append(filtered, active[i])
		}
	}

	total := len(filtered)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &domain.JobPage{
		Jobs:       filtered[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

func (u *jobUsecase) ListByEmployer(ctx context.Context, p *domain.Principal) ([]domain.Job, error) {
	if d := domain.Authorize(p, domain.RoleEmployer, domain.RoleAdmin); d != domain.Allow {
		return nil, gateError(d, "Only employers can list their own jobs")
	}
	jobs, err := u.jobRepo.FetchByEmployer(ctx, p.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, p *domain.Principal, job *domain.Job) error {
	if d := domain.Authorize(p, domain.RoleEmployer, domain.RoleAdmin); d != domain.Allow {
		return gateError(d, "Only employers or admins can update jobs")
	}

	existing, err := u.GetJob(ctx, job.ID)
	if err != nil {
		return err
	}
	if existing.EmployerID != p.ID && !p.IsAdmin() {
		return apperror.Forbidden("You can only update your own job postings")
	}

	if err := validateJobFields(job); err != nil {
		return err
	}
	if job.Status != domain.JobStatusActive && job.Status != domain.JobStatusClosed {
		return apperror.BadRequest("Status must be active or closed")
	}

	// employer identity and denormalized name never change on update
	job.EmployerID = existing.EmployerID
	job.EmployerName = existing.EmployerName
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// DeleteJob removes the posting outright. Applications against it are
// kept; they carry their own denormalized job title and employer name, and
// viewers of such an application see the job as no longer available.
func (u *jobUsecase) DeleteJob(ctx context.Context, p *domain.Principal, id string) error {
	if d := domain.Authorize(p, domain.RoleEmployer, domain.RoleAdmin); d != domain.Allow {
		return gateError(d, "Only employers or admins can delete jobs")
	}

	existing, err := u.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if existing.EmployerID != p.ID && !p.IsAdmin() {
		return apperror.Forbidden("You can only delete your own job postings")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// gateError maps an access gate decision to the transport error.
func gateError(d domain.Decision, forbiddenMsg string) error {
	if d == domain.DenyUnauthenticated {
		return apperror.Unauthorized("User not authenticated")
	}
	return apperror.Forbidden(forbiddenMsg)
}
