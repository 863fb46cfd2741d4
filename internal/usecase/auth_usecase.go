package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo      domain.UserRepository
	candidateRepo domain.CandidateRepository
	employerRepo  domain.EmployerRepository
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	candidateRepo domain.CandidateRepository,
	employerRepo domain.EmployerRepository,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		employerRepo:  employerRepo,
	}
}

// EnsureUserExists syncs the authenticated identity into the local users
// table on first registration. Role is fixed here and only here; an
// existing record is returned untouched, so a re-register with a
// different role can never migrate an account.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	if _, ok := domain.ParseRole(string(user.Role)); !ok || user.Role == domain.RoleAdmin {
		return nil, apperror.BadRequest("role must be candidate or employer")
	}
	if user.Email == "" {
		return nil, apperror.BadRequest("email is required")
	}

	user.CreatedAt = time.Now()
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Valid token but no identity record: the record was removed
			// out-of-band. Signal re-authentication, never crash.
			return nil, apperror.Unauthorized("account not found; please sign in again")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// ResolveSnapshot merges the role-specific profile into the identity.
// A profile that has not been created yet comes back as its empty default
// shape rather than an error.
func (u *authUsecase) ResolveSnapshot(ctx context.Context, p *domain.Principal) (*domain.AccountSnapshot, error) {
	if domain.Authorize(p) != domain.Allow {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	user, err := u.GetCurrentUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	snap := &domain.AccountSnapshot{User: user}

	switch user.Role {
	case domain.RoleCandidate:
		profile, err := u.candidateRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if profile == nil {
			profile = &domain.CandidateProfile{UserID: user.ID}
		}
		snap.Candidate = profile
	case domain.RoleEmployer:
		profile, err := u.employerRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if profile == nil {
			profile = &domain.EmployerProfile{UserID: user.ID}
		}
		snap.Employer = profile
	case domain.RoleAdmin:
		// admins carry no profile document
	}

	return snap, nil
}
