package domain

import "context"

// PlatformStats feeds the admin dashboard.
type PlatformStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalCandidates   int64 `json:"total_candidates"`
	TotalEmployers    int64 `json:"total_employers"`
	TotalJobs         int64 `json:"total_jobs"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

// PaginatedResult wraps a page of admin listings.
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type AdminRepository interface {
	GetStats(ctx context.Context) (*PlatformStats, error)
	ListUsers(ctx context.Context, role Role, limit, offset int) ([]User, int64, error)
}

type AdminUsecase interface {
	GetStats(ctx context.Context, p *Principal) (*PlatformStats, error)
	ListUsers(ctx context.Context, p *Principal, role string, page, pageSize int) (*PaginatedResult[User], error)
	ListJobs(ctx context.Context, p *Principal, page, pageSize int) (*PaginatedResult[Job], error)
}
