package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type employerUsecase struct {
	repo     domain.EmployerRepository
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewEmployerUsecase(repo domain.EmployerRepository, jobRepo domain.JobRepository, validate *validator.Validate) domain.EmployerUsecase {
	return &employerUsecase{
		repo:     repo,
		jobRepo:  jobRepo,
		validate: validate,
	}
}

func (u *employerUsecase) GetProfile(ctx context.Context, p *domain.Principal, userID string) (*domain.EmployerProfile, error) {
	if d := domain.Authorize(p); d != domain.Allow {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if p.ID != userID && !p.IsAdmin() {
		return nil, apperror.Forbidden("You can only view your own profile")
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return &domain.EmployerProfile{UserID: userID}, nil
	}
	return profile, nil
}

// UpdateProfile writes the company profile and re-denormalizes the company
// name on the employer's job postings, so listings reflect a rename.
// Applications keep the name captured at submission time.
func (u *employerUsecase) UpdateProfile(ctx context.Context, p *domain.Principal, profile *domain.EmployerProfile) error {
	if d := domain.Authorize(p, domain.RoleEmployer); d != domain.Allow {
		return gateError(d, "Only employers can edit a company profile")
	}

	profile.UserID = p.ID

	if err := u.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}

	// Refresh-on-write for the listing denormalization. Failure here is
	// staleness, not data loss, so it does not fail the profile update.
	if err := u.jobRepo.UpdateEmployerName(ctx, p.ID, profile.CompanyName); err != nil {
		logger.Log.Warn("employer name re-denormalization failed",
			"employer_id", p.ID, "error", err)
	}
	return nil
}
