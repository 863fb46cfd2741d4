package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	cvStore         domain.CVStore
}

func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	cvStore domain.CVStore,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		cvStore:         cvStore,
	}
}

// Apply runs the submission protocol: duplicate check, CV requirement,
// persist in pending with denormalized snapshots, then store the
// per-application CV snapshot when a file was supplied. The last two steps
// are separate writes; a failure in between leaves the application
// pointing at the canonical CV, which is logged, not hidden.
func (uc *applicationUsecase) Apply(ctx context.Context, p *domain.Principal, jobID string, form *domain.ApplicationForm) (*domain.Application, error) {
	if d := domain.Authorize(p, domain.RoleCandidate); d != domain.Allow {
		return nil, gateError(d, "Only candidates can apply to jobs")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("This job is no longer accepting applications")
	}

	// Pre-submission duplicate check. The storage-level unique constraint
	// is the real guard; this read just gives a clean error without an
	// insert attempt.
	exists, err := uc.applicationRepo.Exists(ctx, p.ID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	// A resolvable CV is required: the canonical profile CV or a file
	// supplied with this submission.
	profile, err := uc.candidateRepo.GetByUserID(ctx, p.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if form.CV == nil && !profile.HasCV() {
		return nil, apperror.BadRequest("A CV is required: upload one to your profile or attach it to this application")
	}
	if form.CV != nil {
		if err := security.ValidateCV(form.CV.Filename, form.CV.ContentType, form.CV.Size, form.CV.Data); err != nil {
			return nil, err
		}
	}

	candidateName := form.Name
	if candidateName == "" {
		candidateName = p.Name
	}
	candidateEmail := form.Email
	if candidateEmail == "" {
		candidateEmail = p.Email
	}

	var message *string
	if form.Message != "" {
		message = &form.Message
	}

	app := &domain.Application{
		ID:             uuid.New().String(),
		JobID:          job.ID,
		CandidateID:    p.ID,
		EmployerID:     job.EmployerID,
		CandidateName:  candidateName,
		CandidateEmail: candidateEmail,
		JobTitle:       job.Title,
		EmployerName:   job.EmployerName,
		Message:        message,
		Status:         domain.ApplicationStatusPending,
		CreatedAt:      time.Now(),
	}
	if profile.HasCV() {
		app.CVUrl = profile.CVUrl
		app.CVName = profile.CVName
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	// Snapshot-on-submit: a file supplied here becomes an immutable
	// per-application copy, never touching the canonical profile CV.
	if form.CV != nil {
		ref, err := uc.cvStore.PutApplicationCV(ctx, app.ID, form.CV)
		if err != nil {
			logger.Log.Error("application CV snapshot failed",
				"application_id", app.ID, "error", err)
			return nil, err
		}
		if err := uc.applicationRepo.AttachCV(ctx, app.ID, ref.URL, ref.Name); err != nil {
			return nil, apperror.Internal(err)
		}
		app.CVUrl = ref.URL
		app.CVName = ref.Name
	}

	return app, nil
}

func (uc *applicationUsecase) HasApplied(ctx context.Context, p *domain.Principal, jobID string) (bool, error) {
	if d := domain.Authorize(p, domain.RoleCandidate); d != domain.Allow {
		return false, gateError(d, "Only candidates have applications")
	}
	exists, err := uc.applicationRepo.Exists(ctx, p.ID, jobID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (uc *applicationUsecase) ListForCandidate(ctx context.Context, p *domain.Principal) ([]domain.Application, error) {
	if d := domain.Authorize(p, domain.RoleCandidate); d != domain.Allow {
		return nil, gateError(d, "Only candidates have applications")
	}
	apps, err := uc.applicationRepo.GetByCandidate(ctx, p.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// GetApplication enforces read access: the applying candidate, the owning
// employer, or an admin.
func (uc *applicationUsecase) GetApplication(ctx context.Context, p *domain.Principal, id string) (*domain.Application, error) {
	if d := domain.Authorize(p); d != domain.Allow {
		return nil, gateError(d, "")
	}
	app, err := uc.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.CandidateID != p.ID && app.EmployerID != p.ID && !p.IsAdmin() {
		return nil, apperror.Forbidden("You do not have access to this application")
	}
	return app, nil
}

func (uc *applicationUsecase) ListForEmployer(ctx context.Context, p *domain.Principal) ([]domain.Application, error) {
	if d := domain.Authorize(p, domain.RoleEmployer, domain.RoleAdmin); d != domain.Allow {
		return nil, gateError(d, "Only employers can view received applications")
	}
	apps, err := uc.applicationRepo.GetByEmployer(ctx, p.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// StatsForEmployer derives the per-job status counts from the employer's
// application set. The view is computed on read, never persisted.
func (uc *applicationUsecase) StatsForEmployer(ctx context.Context, p *domain.Principal) ([]domain.JobApplicationStats, error) {
	apps, err := uc.ListForEmployer(ctx, p)
	if err != nil {
		return nil, err
	}

	byJob := make(map[string]*domain.JobApplicationStats)
	order := make([]string, 0)
	for i := range apps {
		app := &apps[i]
		s, ok := byJob[app.JobID]
		if !ok {
			s = &domain.JobApplicationStats{JobID: app.JobID, JobTitle: app.JobTitle}
			byJob[app.JobID] = s
			order = append(order, app.JobID)
		}
		s.Total++
		switch app.Status {
		case domain.ApplicationStatusPending:
			s.Pending++
		case domain.ApplicationStatusShortlisted:
			s.Shortlisted++
		case domain.ApplicationStatusRejected:
			s.Rejected++
		}
	}

	sort.Strings(order)
	stats := make([]domain.JobApplicationStats, 0, len(order))
	for _, jobID := range order {
		stats = append(stats, *byJob[jobID])
	}
	return stats, nil
}

// SetStatus applies an employer decision. Transition authority rests with
// the owning employer or an admin; candidates are read-only.
func (uc *applicationUsecase) SetStatus(ctx context.Context, p *domain.Principal, id string, status domain.ApplicationStatus) error {
	if d := domain.Authorize(p, domain.RoleEmployer, domain.RoleAdmin); d != domain.Allow {
		return gateError(d, "Only the job's employer can update application status")
	}

	app, err := uc.getByID(ctx, id)
	if err != nil {
		return err
	}
	if app.EmployerID != p.ID && !p.IsAdmin() {
		return apperror.Forbidden("You can only update applications for your own jobs")
	}

	if !domain.CanTransition(app.Status, status) {
		return apperror.BadRequest("Invalid status transition. Applications can only be shortlisted or rejected")
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// CVDownloadURL re-presigns the applicant's CV for the reviewing employer.
// Previously issued URLs may have expired, so this is always a fresh request.
func (uc *applicationUsecase) CVDownloadURL(ctx context.Context, p *domain.Principal, id string) (string, error) {
	app, err := uc.GetApplication(ctx, p, id)
	if err != nil {
		return "", err
	}
	if app.CVUrl == "" {
		return "", apperror.NotFound("No CV attached to this application")
	}

	// Snapshot CVs live under the application key; otherwise the
	// application points at the candidate's canonical slot.
	key := domain.ProfileCVKey(app.CandidateID)
	if strings.Contains(app.CVUrl, domain.ApplicationCVKey(app.ID)) {
		key = domain.ApplicationCVKey(app.ID)
	}

	url, err := uc.cvStore.FreshURL(ctx, key)
	if err != nil {
		return "", err
	}
	return url, nil
}

func (uc *applicationUsecase) getByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}
