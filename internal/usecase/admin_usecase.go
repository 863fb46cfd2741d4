package usecase

import (
	"context"
	"math"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type adminUsecase struct {
	adminRepo domain.AdminRepository
	jobRepo   domain.JobRepository
}

func NewAdminUsecase(adminRepo domain.AdminRepository, jobRepo domain.JobRepository) domain.AdminUsecase {
	return &adminUsecase{adminRepo: adminRepo, jobRepo: jobRepo}
}

func (u *adminUsecase) GetStats(ctx context.Context, p *domain.Principal) (*domain.PlatformStats, error) {
	if d := domain.Authorize(p, domain.RoleAdmin); d != domain.Allow {
		return nil, gateError(d, "Admin access required")
	}

	stats, err := u.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, p *domain.Principal, role string, page, pageSize int) (*domain.PaginatedResult[domain.User], error) {
	if d := domain.Authorize(p, domain.RoleAdmin); d != domain.Allow {
		return nil, gateError(d, "Admin access required")
	}

	var roleFilter domain.Role
	if role != "" {
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return nil, apperror.BadRequest("Unknown role filter: " + role)
		}
		roleFilter = parsed
	}

	page, pageSize = clampPage(page, pageSize)
	users, total, err := u.adminRepo.ListUsers(ctx, roleFilter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.PaginatedResult[domain.User]{
		Data:       users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (u *adminUsecase) ListJobs(ctx context.Context, p *domain.Principal, page, pageSize int) (*domain.PaginatedResult[domain.Job], error) {
	if d := domain.Authorize(p, domain.RoleAdmin); d != domain.Allow {
		return nil, gateError(d, "Admin access required")
	}

	page, pageSize = clampPage(page, pageSize)
	jobs, total, err := u.jobRepo.FetchAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.PaginatedResult[domain.Job]{
		Data:       jobs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
