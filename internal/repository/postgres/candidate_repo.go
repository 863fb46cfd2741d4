package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT user_id, COALESCE(phone, ''), COALESCE(location, ''), COALESCE(bio, ''),
		       skills, COALESCE(cv_url, ''), COALESCE(cv_name, ''), cv_updated_at,
		       created_at, updated_at
		FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	var skills []string

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Phone, &p.Location, &p.Bio,
		pq.Array(&skills), &p.CVUrl, &p.CVName, &p.CVUpdatedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Not-yet-created profile is expected; callers shape the default.
			return nil, nil
		}
		return nil, err
	}
	p.Skills = skills
	return &p, nil
}

func (r *candidateRepo) Upsert(ctx context.Context, profile *domain.CandidateProfile) error {
	query := `
		INSERT INTO candidate_profiles (user_id, phone, location, bio, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			updated_at = NOW()`
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.Phone, profile.Location, profile.Bio,
		pq.Array(profile.Skills),
	)
	return err
}

func (r *candidateRepo) SetCV(ctx context.Context, userID string, ref *domain.CVRef) error {
	query := `
		INSERT INTO candidate_profiles (user_id, skills, cv_url, cv_name, cv_updated_at, created_at, updated_at)
		VALUES ($1, '{}', $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			cv_url = EXCLUDED.cv_url,
			cv_name = EXCLUDED.cv_name,
			cv_updated_at = EXCLUDED.cv_updated_at,
			updated_at = NOW()`
	uploadedAt := ref.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}
	_, err := r.db.Exec(ctx, query, userID, ref.URL, ref.Name, uploadedAt)
	return err
}
