package domain

import (
	"context"
	"time"
)

type CandidateProfile struct {
	UserID      string     `json:"user_id"`
	Phone       string     `json:"phone" validate:"max=32"`
	Location    string     `json:"location" validate:"max=100"`
	Bio         string     `json:"bio" validate:"max=500"`
	Skills      []string   `json:"skills" validate:"dive,min=1,max=50"`
	CVUrl       string     `json:"cv_url,omitempty"`
	CVName      string     `json:"cv_name,omitempty"`
	CVUpdatedAt *time.Time `json:"cv_updated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasCV reports whether a canonical profile CV is attached.
func (p *CandidateProfile) HasCV() bool {
	return p != nil && p.CVUrl != ""
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	Upsert(ctx context.Context, profile *CandidateProfile) error
	SetCV(ctx context.Context, userID string, ref *CVRef) error
}

type CandidateUsecase interface {
	// GetProfile returns the empty default shape when the profile has not
	// been created yet; profile-not-yet-created is expected, not an error.
	GetProfile(ctx context.Context, p *Principal, userID string) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, p *Principal, profile *CandidateProfile) error
	// UploadCV validates and stores the canonical profile CV, overwriting
	// any previous upload, and writes the reference through to the profile.
	UploadCV(ctx context.Context, p *Principal, up *CVUpload) (*CVRef, error)
	// FreshCVURL returns a short-lived retrieval URL for the canonical CV.
	FreshCVURL(ctx context.Context, p *Principal) (string, error)
}
