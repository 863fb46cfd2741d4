package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateName(ctx context.Context, id, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}
func (m *MockCandidateRepo) Upsert(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockCandidateRepo) SetCV(ctx context.Context, userID string, ref *domain.CVRef) error {
	return m.Called(ctx, userID, ref).Error(0)
}

type MockEmployerRepo struct {
	mock.Mock
}

func (m *MockEmployerRepo) GetByUserID(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}
func (m *MockEmployerRepo) Upsert(ctx context.Context, profile *domain.EmployerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchActive(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchAll(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) UpdateEmployerName(ctx context.Context, employerID, name string) error {
	return m.Called(ctx, employerID, name).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, candidateID, jobID string) (bool, error) {
	args := m.Called(ctx, candidateID, jobID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) AttachCV(ctx context.Context, id, cvURL, cvName string) error {
	return m.Called(ctx, id, cvURL, cvName).Error(0)
}
func (m *MockApplicationRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCVStore struct {
	mock.Mock
}

func (m *MockCVStore) PutProfileCV(ctx context.Context, userID string, up *domain.CVUpload) (*domain.CVRef, error) {
	args := m.Called(ctx, userID, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVRef), args.Error(1)
}
func (m *MockCVStore) PutApplicationCV(ctx context.Context, applicationID string, up *domain.CVUpload) (*domain.CVRef, error) {
	args := m.Called(ctx, applicationID, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVRef), args.Error(1)
}
func (m *MockCVStore) FreshURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// Fixtures

func candidatePrincipal() *domain.Principal {
	return &domain.Principal{ID: "cand-1", Email: "jane@example.com", Name: "Jane Doe", Role: domain.RoleCandidate}
}

func employerPrincipal() *domain.Principal {
	return &domain.Principal{ID: "emp-1", Email: "hr@acme.test", Name: "Acme HR", Role: domain.RoleEmployer}
}

func adminPrincipal() *domain.Principal {
	return &domain.Principal{ID: "adm-1", Email: "root@platform.test", Name: "Root", Role: domain.RoleAdmin}
}

func activeJob() *domain.Job {
	return &domain.Job{
		ID:           "job-1",
		EmployerID:   "emp-1",
		EmployerName: "Acme Fintech",
		Title:        "Backend Engineer",
		Description:  "Go services",
		Location:     "Jakarta",
		Type:         domain.JobTypeFullTime,
		Status:       domain.JobStatusActive,
	}
}

func newApplicationUC(appRepo *MockApplicationRepo, jobRepo *MockJobRepo, candRepo *MockCandidateRepo, cvStore *MockCVStore) domain.ApplicationUsecase {
	return usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, cvStore)
}

// Application submission

func TestApply(t *testing.T) {
	t.Run("Happy path with profile CV", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		uc := newApplicationUC(appRepo, jobRepo, candRepo, new(MockCVStore))

		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		appRepo.On("Exists", mock.Anything, "cand-1", "job-1").Return(false, nil)
		candRepo.On("GetByUserID", mock.Anything, "cand-1").Return(&domain.CandidateProfile{
			UserID: "cand-1", CVUrl: "https://bucket/cvs/cand-1/resume.pdf", CVName: "resume.pdf",
		}, nil)
		appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := uc.Apply(context.Background(), candidatePrincipal(), "job-1", &domain.ApplicationForm{})

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.NotEmpty(t, app.ID)
		assert.Equal(t, "cand-1", app.CandidateID)
		assert.Equal(t, "emp-1", app.EmployerID)
		assert.Equal(t, "Backend Engineer", app.JobTitle)
		assert.Equal(t, "Acme Fintech", app.EmployerName)
		assert.Equal(t, "Jane Doe", app.CandidateName)
		assert.Equal(t, "jane@example.com", app.CandidateEmail)
		assert.Equal(t, "https://bucket/cvs/cand-1/resume.pdf", app.CVUrl)
		appRepo.AssertExpectations(t)
	})

	t.Run("Attached file becomes an immutable snapshot", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		cvStore := new(MockCVStore)
		uc := newApplicationUC(appRepo, jobRepo, candRepo, cvStore)

		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		appRepo.On("Exists", mock.Anything, "cand-1", "job-1").Return(false, nil)
		candRepo.On("GetByUserID", mock.Anything, "cand-1").Return(nil, nil)
		appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)
		cvStore.On("PutApplicationCV", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*domain.CVUpload")).
			Return(&domain.CVRef{URL: "https://bucket/applications/app-x/resume.pdf", Name: "mine.pdf"}, nil)
		appRepo.On("AttachCV", mock.Anything, mock.AnythingOfType("string"),
			"https://bucket/applications/app-x/resume.pdf", "mine.pdf").Return(nil)

		form := &domain.ApplicationForm{CV: &domain.CVUpload{Filename: "mine.pdf", Data: []byte("%PDF-")}}
		app, err := uc.Apply(context.Background(), candidatePrincipal(), "job-1", form)

		assert.NoError(t, err)
		assert.Equal(t, "https://bucket/applications/app-x/resume.pdf", app.CVUrl)
		cvStore.AssertExpectations(t)
		appRepo.AssertExpectations(t)
	})

	t.Run("Duplicate application is rejected with conflict", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo, new(MockCandidateRepo), new(MockCVStore))

		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		appRepo.On("Exists", mock.Anything, "cand-1", "job-1").Return(true, nil)

		_, err := uc.Apply(context.Background(), candidatePrincipal(), "job-1", &domain.ApplicationForm{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Race loser gets conflict from the unique constraint", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		uc := newApplicationUC(appRepo, jobRepo, candRepo, new(MockCVStore))

		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		appRepo.On("Exists", mock.Anything, "cand-1", "job-1").Return(false, nil)
		candRepo.On("GetByUserID", mock.Anything, "cand-1").Return(&domain.CandidateProfile{
			UserID: "cand-1", CVUrl: "https://bucket/cvs/cand-1/resume.pdf",
		}, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateApplication)

		_, err := uc.Apply(context.Background(), candidatePrincipal(), "job-1", &domain.ApplicationForm{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Missing CV blocks submission", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		uc := newApplicationUC(appRepo, jobRepo, candRepo, new(MockCVStore))

		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		appRepo.On("Exists", mock.Anything, "cand-1", "job-1").Return(false, nil)
		candRepo.On("GetByUserID", mock.Anything, "cand-1").Return(nil, nil)

		_, err := uc.Apply(context.Background(), candidatePrincipal(), "job-1", &domain.ApplicationForm{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "CV is required")
	})

	t.Run("Invalid attached file is rejected before any write", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		uc := newApplicationUC(appRepo, jobRepo, candRepo, new(MockCVStore))

		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		appRepo.On("Exists", mock.Anything, "cand-1", "job-1").Return(false, nil)
		candRepo.On("GetByUserID", mock.Anything, "cand-1").Return(nil, nil)

		form := &domain.ApplicationForm{CV: &domain.CVUpload{Filename: "resume.docx", Data: []byte("PK")}}
		_, err := uc.Apply(context.Background(), candidatePrincipal(), "job-1", form)
		assert.Error(t, err)
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Closed job rejects applications", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(new(MockApplicationRepo), jobRepo, new(MockCandidateRepo), new(MockCVStore))

		closed := activeJob()
		closed.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(closed, nil)

		_, err := uc.Apply(context.Background(), candidatePrincipal(), "job-1", &domain.ApplicationForm{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no longer accepting")
	})

	t.Run("Missing job is not found, transient lookup failure is not", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(new(MockApplicationRepo), jobRepo, new(MockCandidateRepo), new(MockCVStore))

		jobRepo.On("GetByID", mock.Anything, "gone").Return(nil, domain.ErrNotFound)
		_, err := uc.Apply(context.Background(), candidatePrincipal(), "gone", &domain.ApplicationForm{})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)

		jobRepo.On("GetByID", mock.Anything, "flaky").Return(nil, errors.New("connection reset"))
		_, err = uc.Apply(context.Background(), candidatePrincipal(), "flaky", &domain.ApplicationForm{})
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	})

	t.Run("Only candidates can apply", func(t *testing.T) {
		uc := newApplicationUC(new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		_, err := uc.Apply(context.Background(), employerPrincipal(), "job-1", &domain.ApplicationForm{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only candidates can apply")

		_, err = uc.Apply(context.Background(), nil, "job-1", &domain.ApplicationForm{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not authenticated")
	})
}

// Status transitions

func TestSetStatus(t *testing.T) {
	pendingApp := func() *domain.Application {
		return &domain.Application{
			ID: "app-1", JobID: "job-1", CandidateID: "cand-1", EmployerID: "emp-1",
			Status: domain.ApplicationStatusPending,
		}
	}

	t.Run("Owning employer can shortlist a pending application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		appRepo.On("GetByID", mock.Anything, "app-1").Return(pendingApp(), nil)
		appRepo.On("UpdateStatus", mock.Anything, "app-1", domain.ApplicationStatusShortlisted).Return(nil)

		err := uc.SetStatus(context.Background(), employerPrincipal(), "app-1", domain.ApplicationStatusShortlisted)
		assert.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("Shortlisted can be reversed to rejected", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		app := pendingApp()
		app.Status = domain.ApplicationStatusShortlisted
		appRepo.On("GetByID", mock.Anything, "app-1").Return(app, nil)
		appRepo.On("UpdateStatus", mock.Anything, "app-1", domain.ApplicationStatusRejected).Return(nil)

		err := uc.SetStatus(context.Background(), employerPrincipal(), "app-1", domain.ApplicationStatusRejected)
		assert.NoError(t, err)
	})

	t.Run("Nothing goes back to pending", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		app := pendingApp()
		app.Status = domain.ApplicationStatusShortlisted
		appRepo.On("GetByID", mock.Anything, "app-1").Return(app, nil)

		err := uc.SetStatus(context.Background(), employerPrincipal(), "app-1", domain.ApplicationStatusPending)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid status transition")
	})

	t.Run("Another employer cannot touch the application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		appRepo.On("GetByID", mock.Anything, "app-1").Return(pendingApp(), nil)

		other := &domain.Principal{ID: "emp-2", Role: domain.RoleEmployer}
		err := uc.SetStatus(context.Background(), other, "app-1", domain.ApplicationStatusShortlisted)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own jobs")
	})

	t.Run("Admin can update any application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		appRepo.On("GetByID", mock.Anything, "app-1").Return(pendingApp(), nil)
		appRepo.On("UpdateStatus", mock.Anything, "app-1", domain.ApplicationStatusRejected).Return(nil)

		err := uc.SetStatus(context.Background(), adminPrincipal(), "app-1", domain.ApplicationStatusRejected)
		assert.NoError(t, err)
	})

	t.Run("Candidates cannot update status", func(t *testing.T) {
		uc := newApplicationUC(new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		err := uc.SetStatus(context.Background(), candidatePrincipal(), "app-1", domain.ApplicationStatusShortlisted)
		assert.Error(t, err)
	})
}

// Application reads

func TestGetApplication(t *testing.T) {
	app := &domain.Application{ID: "app-1", CandidateID: "cand-1", EmployerID: "emp-1"}

	newUC := func(appRepo *MockApplicationRepo) domain.ApplicationUsecase {
		return newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))
	}

	t.Run("Applying candidate, owning employer and admin can read", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", mock.Anything, "app-1").Return(app, nil)
		uc := newUC(appRepo)

		for _, p := range []*domain.Principal{candidatePrincipal(), employerPrincipal(), adminPrincipal()} {
			got, err := uc.GetApplication(context.Background(), p, "app-1")
			assert.NoError(t, err)
			assert.Equal(t, "app-1", got.ID)
		}
	})

	t.Run("Unrelated principal is forbidden", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", mock.Anything, "app-1").Return(app, nil)
		uc := newUC(appRepo)

		stranger := &domain.Principal{ID: "cand-2", Role: domain.RoleCandidate}
		_, err := uc.GetApplication(context.Background(), stranger, "app-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "do not have access")
	})

	t.Run("Missing application is not found", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound)
		uc := newUC(appRepo)

		_, err := uc.GetApplication(context.Background(), adminPrincipal(), "nope")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestStatsForEmployer(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

	appRepo.On("GetByEmployer", mock.Anything, "emp-1").Return([]domain.Application{
		{JobID: "job-1", JobTitle: "Backend Engineer", Status: domain.ApplicationStatusPending},
		{JobID: "job-1", JobTitle: "Backend Engineer", Status: domain.ApplicationStatusShortlisted},
		{JobID: "job-1", JobTitle: "Backend Engineer", Status: domain.ApplicationStatusRejected},
		{JobID: "job-2", JobTitle: "Data Analyst", Status: domain.ApplicationStatusPending},
	}, nil)

	stats, err := uc.StatsForEmployer(context.Background(), employerPrincipal())
	assert.NoError(t, err)
	assert.Len(t, stats, 2)

	assert.Equal(t, "job-1", stats[0].JobID)
	assert.Equal(t, 3, stats[0].Total)
	assert.Equal(t, 1, stats[0].Pending)
	assert.Equal(t, 1, stats[0].Shortlisted)
	assert.Equal(t, 1, stats[0].Rejected)

	assert.Equal(t, "job-2", stats[1].JobID)
	assert.Equal(t, 1, stats[1].Total)
}

func TestCVDownloadURL(t *testing.T) {
	t.Run("Snapshot CV is presigned under the application key", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		cvStore := new(MockCVStore)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), cvStore)

		appRepo.On("GetByID", mock.Anything, "app-1").Return(&domain.Application{
			ID: "app-1", CandidateID: "cand-1", EmployerID: "emp-1",
			CVUrl: "https://bucket/applications/app-1/resume.pdf?sig=old",
		}, nil)
		cvStore.On("FreshURL", mock.Anything, "applications/app-1/resume.pdf").
			Return("https://bucket/applications/app-1/resume.pdf?sig=new", nil)

		url, err := uc.CVDownloadURL(context.Background(), employerPrincipal(), "app-1")
		assert.NoError(t, err)
		assert.Contains(t, url, "sig=new")
	})

	t.Run("Profile CV is presigned under the canonical key", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		cvStore := new(MockCVStore)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), cvStore)

		appRepo.On("GetByID", mock.Anything, "app-1").Return(&domain.Application{
			ID: "app-1", CandidateID: "cand-1", EmployerID: "emp-1",
			CVUrl: "https://bucket/cvs/cand-1/resume.pdf?sig=old",
		}, nil)
		cvStore.On("FreshURL", mock.Anything, "cvs/cand-1/resume.pdf").
			Return("https://bucket/cvs/cand-1/resume.pdf?sig=new", nil)

		url, err := uc.CVDownloadURL(context.Background(), employerPrincipal(), "app-1")
		assert.NoError(t, err)
		assert.Contains(t, url, "sig=new")
	})

	t.Run("No CV attached is not found", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo), new(MockCandidateRepo), new(MockCVStore))

		appRepo.On("GetByID", mock.Anything, "app-1").Return(&domain.Application{
			ID: "app-1", CandidateID: "cand-1", EmployerID: "emp-1",
		}, nil)

		_, err := uc.CVDownloadURL(context.Background(), employerPrincipal(), "app-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No CV attached")
	})
}

// Job listing

func TestListActive(t *testing.T) {
	makeJobs := func(n int) []domain.Job {
		jobs := make([]domain.Job, n)
		for i := range jobs {
			jobs[i] = *activeJob()
			jobs[i].ID = "job-" + string(rune('a'+i))
		}
		return jobs
	}

	newUC := func(jobRepo *MockJobRepo) domain.JobUsecase {
		return usecase.NewJobUsecase(jobRepo, new(MockEmployerRepo), 9)
	}

	t.Run("Pages concatenate to the filtered set exactly once", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("FetchActive", mock.Anything).Return(makeJobs(11), nil)
		uc := newUC(jobRepo)

		var seen []string
		page := 1
		for {
			result, err := uc.ListActive(context.Background(), domain.JobFilter{}, page, 4)
			assert.NoError(t, err)
			for _, j := range result.Jobs {
				seen = append(seen, j.ID)
			}
			if page >= result.TotalPages {
				assert.Equal(t, 3, result.TotalPages)
				assert.Equal(t, 11, result.Total)
				break
			}
			page++
		}

		assert.Len(t, seen, 11)
		unique := make(map[string]bool)
		for _, id := range seen {
			unique[id] = true
		}
		assert.Len(t, unique, 11)
	})

	t.Run("Page beyond the end clamps to the last page", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("FetchActive", mock.Anything).Return(makeJobs(5), nil)
		uc := newUC(jobRepo)

		result, err := uc.ListActive(context.Background(), domain.JobFilter{}, 99, 4)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Page)
		assert.Len(t, result.Jobs, 1)
	})

	t.Run("Empty result still reports one page", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("FetchActive", mock.Anything).Return([]domain.Job{}, nil)
		uc := newUC(jobRepo)

		result, err := uc.ListActive(context.Background(), domain.JobFilter{Keyword: "nothing"}, 1, 9)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.TotalPages)
		assert.Equal(t, 0, result.Total)
		assert.Empty(t, result.Jobs)
	})

	t.Run("Filter narrows the set before pagination", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobs := makeJobs(3)
		jobs[1].Title = "Frontend Engineer"
		jobRepo.On("FetchActive", mock.Anything).Return(jobs, nil)
		uc := newUC(jobRepo)

		result, err := uc.ListActive(context.Background(), domain.JobFilter{Keyword: "backend"}, 1, 9)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Total)
	})
}

func TestJobOwnership(t *testing.T) {
	t.Run("Employer cannot update another employer's job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		uc := usecase.NewJobUsecase(jobRepo, new(MockEmployerRepo), 9)

		other := &domain.Principal{ID: "emp-2", Role: domain.RoleEmployer}
		job := activeJob()
		err := uc.UpdateJob(context.Background(), other, job)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own job postings")
	})

	t.Run("Admin can delete any job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
		jobRepo.On("Delete", mock.Anything, "job-1").Return(nil)
		uc := usecase.NewJobUsecase(jobRepo, new(MockEmployerRepo), 9)

		err := uc.DeleteJob(context.Background(), adminPrincipal(), "job-1")
		assert.NoError(t, err)
	})

	t.Run("Candidates cannot create jobs", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), new(MockEmployerRepo), 9)

		err := uc.CreateJob(context.Background(), candidatePrincipal(), activeJob())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only employers or admins")
	})
}

func TestCreateJobDenormalizesCompanyName(t *testing.T) {
	jobRepo := new(MockJobRepo)
	employerRepo := new(MockEmployerRepo)
	uc := usecase.NewJobUsecase(jobRepo, employerRepo, 9)

	employerRepo.On("GetByUserID", mock.Anything, "emp-1").Return(&domain.EmployerProfile{
		UserID: "emp-1", CompanyName: "Acme Fintech",
	}, nil)

	var created *domain.Job
	jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Job) }).Return(nil)

	job := &domain.Job{Title: "Backend Engineer", Description: "Go", Location: "Jakarta", Type: "Full-Time"}
	err := uc.CreateJob(context.Background(), employerPrincipal(), job)

	assert.NoError(t, err)
	assert.Equal(t, "Acme Fintech", created.EmployerName)
	assert.Equal(t, "emp-1", created.EmployerID)
	assert.Equal(t, domain.JobStatusActive, created.Status)
	assert.Equal(t, domain.JobTypeFullTime, created.Type)
}

// Orphaned application scenario: apply, shortlist, delete the job, the
// application keeps its denormalized snapshot end to end.
func TestApplicationSurvivesJobDeletion(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candRepo := new(MockCandidateRepo)
	appUC := newApplicationUC(appRepo, jobRepo, candRepo, new(MockCVStore))
	jobUC := usecase.NewJobUsecase(jobRepo, new(MockEmployerRepo), 9)

	jobRepo.On("GetByID", mock.Anything, "job-1").Return(activeJob(), nil)
	appRepo.On("Exists", mock.Anything, "cand-1", "job-1").Return(false, nil)
	candRepo.On("GetByUserID", mock.Anything, "cand-1").Return(&domain.CandidateProfile{
		UserID: "cand-1", CVUrl: "https://bucket/cvs/cand-1/resume.pdf",
	}, nil)

	var stored *domain.Application
	appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Application)
		}).Return(nil)

	app, err := appUC.Apply(context.Background(), candidatePrincipal(), "job-1", &domain.ApplicationForm{})
	assert.NoError(t, err)

	appRepo.On("GetByID", mock.Anything, app.ID).Return(stored, nil)
	appRepo.On("UpdateStatus", mock.Anything, app.ID, domain.ApplicationStatusShortlisted).
		Run(func(args mock.Arguments) { stored.Status = domain.ApplicationStatusShortlisted }).Return(nil)

	err = appUC.SetStatus(context.Background(), employerPrincipal(), app.ID, domain.ApplicationStatusShortlisted)
	assert.NoError(t, err)

	jobRepo.On("Delete", mock.Anything, "job-1").Return(nil)
	err = jobUC.DeleteJob(context.Background(), employerPrincipal(), "job-1")
	assert.NoError(t, err)

	got, err := appUC.GetApplication(context.Background(), candidatePrincipal(), app.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusShortlisted, got.Status)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, "Acme Fintech", got.EmployerName)
}

// Profile access

func TestCandidateProfileAccess(t *testing.T) {
	validate := validator.New()

	t.Run("Candidate cannot read another candidate's profile", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockCVStore), validate)

		_, err := uc.GetProfile(context.Background(), candidatePrincipal(), "cand-2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only view your own profile")
	})

	t.Run("Admin can read any profile", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByUserID", mock.Anything, "cand-2").Return(&domain.CandidateProfile{UserID: "cand-2"}, nil)
		uc := usecase.NewCandidateUsecase(repo, new(MockCVStore), validate)

		profile, err := uc.GetProfile(context.Background(), adminPrincipal(), "cand-2")
		assert.NoError(t, err)
		assert.Equal(t, "cand-2", profile.UserID)
	})

	t.Run("Missing profile comes back as empty default shape", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByUserID", mock.Anything, "cand-1").Return(nil, nil)
		uc := usecase.NewCandidateUsecase(repo, new(MockCVStore), validate)

		profile, err := uc.GetProfile(context.Background(), candidatePrincipal(), "cand-1")
		assert.NoError(t, err)
		assert.Equal(t, "cand-1", profile.UserID)
		assert.NotNil(t, profile.Skills)
		assert.Empty(t, profile.Skills)
	})

	t.Run("Update forces ownership from the principal", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		var saved *domain.CandidateProfile
		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.CandidateProfile")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.CandidateProfile) }).Return(nil)
		uc := usecase.NewCandidateUsecase(repo, new(MockCVStore), validate)

		err := uc.UpdateProfile(context.Background(), candidatePrincipal(), &domain.CandidateProfile{
			UserID: "someone-else", Bio: "Go developer",
		})
		assert.NoError(t, err)
		assert.Equal(t, "cand-1", saved.UserID)
	})

	t.Run("Unauthenticated principal fails safe", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockCVStore), validate)

		_, err := uc.GetProfile(context.Background(), nil, "cand-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not authenticated")
	})
}

func TestEmployerRenameRefreshesJobs(t *testing.T) {
	validate := validator.New()
	repo := new(MockEmployerRepo)
	jobRepo := new(MockJobRepo)
	uc := usecase.NewEmployerUsecase(repo, jobRepo, validate)

	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.EmployerProfile")).Return(nil)
	jobRepo.On("UpdateEmployerName", mock.Anything, "emp-1", "Acme Global").Return(nil)

	err := uc.UpdateProfile(context.Background(), employerPrincipal(), &domain.EmployerProfile{
		CompanyName: "Acme Global",
	})
	assert.NoError(t, err)
	jobRepo.AssertCalled(t, "UpdateEmployerName", mock.Anything, "emp-1", "Acme Global")
}

func TestUploadCV(t *testing.T) {
	validate := validator.New()

	t.Run("Valid PDF is stored and written to the profile", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		cvStore := new(MockCVStore)
		uc := usecase.NewCandidateUsecase(repo, cvStore, validate)

		ref := &domain.CVRef{URL: "https://bucket/cvs/cand-1/resume.pdf", Name: "resume.pdf", UploadedAt: time.Now()}
		cvStore.On("PutProfileCV", mock.Anything, "cand-1", mock.AnythingOfType("*domain.CVUpload")).Return(ref, nil)
		repo.On("SetCV", mock.Anything, "cand-1", ref).Return(nil)

		got, err := uc.UploadCV(context.Background(), candidatePrincipal(), &domain.CVUpload{
			Filename: "resume.pdf", ContentType: "application/pdf", Size: 1024, Data: []byte("%PDF-1.4"),
		})
		assert.NoError(t, err)
		assert.Equal(t, ref.URL, got.URL)
		repo.AssertExpectations(t)
	})

	t.Run("Oversize file fails naming the size, not as an empty upload", func(t *testing.T) {
		cvStore := new(MockCVStore)
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), cvStore, validate)

		// The handler never buffers a body past the ceiling, so an
		// oversize upload reaches the usecase with size set and no data.
		_, err := uc.UploadCV(context.Background(), candidatePrincipal(), &domain.CVUpload{
			Filename: "resume.pdf", ContentType: "application/pdf", Size: 3 * 1024 * 1024,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "less than 2MB")
		assert.Contains(t, err.Error(), "3.00MB")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.Code)
		cvStore.AssertNotCalled(t, "PutProfileCV", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid file never reaches storage", func(t *testing.T) {
		cvStore := new(MockCVStore)
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), cvStore, validate)

		_, err := uc.UploadCV(context.Background(), candidatePrincipal(), &domain.CVUpload{
			Filename: "resume.docx", ContentType: "application/msword", Size: 1024, Data: []byte("PK"),
		})
		assert.Error(t, err)
		cvStore.AssertNotCalled(t, "PutProfileCV", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fresh URL requires an uploaded CV", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByUserID", mock.Anything, "cand-1").Return(nil, nil)
		uc := usecase.NewCandidateUsecase(repo, new(MockCVStore), validate)

		_, err := uc.FreshCVURL(context.Background(), candidatePrincipal())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No CV uploaded yet")
	})
}

// Registration

func TestEnsureUserExists(t *testing.T) {
	newUC := func(userRepo *MockUserRepo) domain.AuthUsecase {
		return usecase.NewAuthUsecase(userRepo, new(MockCandidateRepo), new(MockEmployerRepo))
	}

	t.Run("First registration creates the record", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
		uc := newUC(userRepo)

		user, err := uc.EnsureUserExists(context.Background(), &domain.User{
			ID: "u1", Email: "jane@example.com", Name: "Jane", Role: domain.RoleCandidate,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleCandidate, user.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("Re-register with a different role cannot migrate the account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, "u1").Return(&domain.User{
			ID: "u1", Email: "jane@example.com", Role: domain.RoleCandidate,
		}, nil)
		uc := newUC(userRepo)

		user, err := uc.EnsureUserExists(context.Background(), &domain.User{
			ID: "u1", Email: "jane@example.com", Role: domain.RoleEmployer,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleCandidate, user.Role)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Admin role cannot be self-assigned at registration", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
		uc := newUC(userRepo)

		_, err := uc.EnsureUserExists(context.Background(), &domain.User{
			ID: "u1", Email: "jane@example.com", Role: domain.RoleAdmin,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "candidate or employer")
	})
}

// Admin surface

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlatformStats), args.Error(1)
}
func (m *MockAdminRepo) ListUsers(ctx context.Context, role domain.Role, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func TestAdminGate(t *testing.T) {
	uc := usecase.NewAdminUsecase(new(MockAdminRepo), new(MockJobRepo))

	t.Run("Non-admins are rejected", func(t *testing.T) {
		_, err := uc.GetStats(context.Background(), employerPrincipal())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin access required")

		_, err = uc.ListUsers(context.Background(), candidatePrincipal(), "", 1, 10)
		assert.Error(t, err)
	})

	t.Run("Unauthenticated fails safe", func(t *testing.T) {
		_, err := uc.GetStats(context.Background(), nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not authenticated")
	})
}

func TestAdminListUsers(t *testing.T) {
	adminRepo := new(MockAdminRepo)
	uc := usecase.NewAdminUsecase(adminRepo, new(MockJobRepo))

	t.Run("Role filter is validated", func(t *testing.T) {
		_, err := uc.ListUsers(context.Background(), adminPrincipal(), "superuser", 1, 10)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown role filter")
	})

	t.Run("Pagination is clamped and totals derived", func(t *testing.T) {
		adminRepo.On("ListUsers", mock.Anything, domain.RoleCandidate, 10, 0).
			Return([]domain.User{{ID: "u1"}}, int64(25), nil)

		result, err := uc.ListUsers(context.Background(), adminPrincipal(), "candidate", 0, 9999)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 10, result.PageSize)
		assert.Equal(t, 3, result.TotalPages)
	})
}
