package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	repo     domain.CandidateRepository
	cvStore  domain.CVStore
	validate *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, cvStore domain.CVStore, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		cvStore:  cvStore,
		validate: validate,
	}
}

func (u *candidateUsecase) GetProfile(ctx context.Context, p *domain.Principal, userID string) (*domain.CandidateProfile, error) {
	if d := domain.Authorize(p); d != domain.Allow {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	// Ownership check: candidates read their own profile; admins may read any.
	if p.ID != userID && !p.IsAdmin() {
		return nil, apperror.Forbidden("You can only view your own profile")
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		// not-yet-created profile is the empty default shape
		return &domain.CandidateProfile{UserID: userID, Skills: []string{}}, nil
	}
	return profile, nil
}

func (u *candidateUsecase) UpdateProfile(ctx context.Context, p *domain.Principal, profile *domain.CandidateProfile) error {
	if d := domain.Authorize(p, domain.RoleCandidate); d != domain.Allow {
		return gateError(d, "Only candidates can edit a candidate profile")
	}

	// Force ownership: the payload can never point at someone else.
	profile.UserID = p.ID

	if err := u.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// UploadCV stores the canonical profile CV. One slot per candidate: a new
// upload overwrites the previous object and the profile metadata with it.
func (u *candidateUsecase) UploadCV(ctx context.Context, p *domain.Principal, up *domain.CVUpload) (*domain.CVRef, error) {
	if d := domain.Authorize(p, domain.RoleCandidate); d != domain.Allow {
		return nil, gateError(d, "Only candidates can upload a CV")
	}
	// Oversize uploads arrive with an empty body; the validator's size
	// check must run before any empty-file guard so the error names the
	// offending size.
	if up == nil || (up.Size == 0 && len(up.Data) == 0) {
		return nil, apperror.BadRequest("No file selected")
	}

	if err := security.ValidateCV(up.Filename, up.ContentType, up.Size, up.Data); err != nil {
		return nil, err
	}

	ref, err := u.cvStore.PutProfileCV(ctx, p.ID, up)
	if err != nil {
		return nil, err
	}

	if err := u.repo.SetCV(ctx, p.ID, ref); err != nil {
		return nil, apperror.Internal(err)
	}
	return ref, nil
}

func (u *candidateUsecase) FreshCVURL(ctx context.Context, p *domain.Principal) (string, error) {
	if d := domain.Authorize(p, domain.RoleCandidate); d != domain.Allow {
		return "", gateError(d, "Only candidates have a profile CV")
	}

	profile, err := u.repo.GetByUserID(ctx, p.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if !profile.HasCV() {
		return "", apperror.NotFound("No CV uploaded yet")
	}

	return u.cvStore.FreshURL(ctx, domain.ProfileCVKey(p.ID))
}
