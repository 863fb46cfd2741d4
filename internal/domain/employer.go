package domain

import (
	"context"
	"time"
)

type EmployerProfile struct {
	UserID      string    `json:"user_id"`
	CompanyName string    `json:"company_name" validate:"required,min=2,max=120"`
	Industry    string    `json:"industry" validate:"max=100"`
	Location    string    `json:"location" validate:"max=100"`
	Website     string    `json:"website" validate:"omitempty,url"`
	Description string    `json:"description" validate:"max=2000"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EmployerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*EmployerProfile, error)
	Upsert(ctx context.Context, profile *EmployerProfile) error
}

type EmployerUsecase interface {
	// GetProfile returns the empty default shape for a not-yet-created profile.
	GetProfile(ctx context.Context, p *Principal, userID string) (*EmployerProfile, error)
	// UpdateProfile also re-denormalizes the company name onto the
	// employer's job postings so listings never go stale.
	UpdateProfile(ctx context.Context, p *Principal, profile *EmployerProfile) error
}
