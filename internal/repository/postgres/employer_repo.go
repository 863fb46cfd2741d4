package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type employerRepo struct {
	db *pgxpool.Pool
}

func NewEmployerRepository(db *pgxpool.Pool) domain.EmployerRepository {
	return &employerRepo{db: db}
}

func (r *employerRepo) GetByUserID(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	query := `
		SELECT user_id, company_name, COALESCE(industry, ''), COALESCE(location, ''),
		       COALESCE(website, ''), COALESCE(description, ''), created_at, updated_at
		FROM employer_profiles WHERE user_id = $1`

	var p domain.EmployerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.CompanyName, &p.Industry, &p.Location,
		&p.Website, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *employerRepo) Upsert(ctx context.Context, profile *domain.EmployerProfile) error {
	query := `
		INSERT INTO employer_profiles (user_id, company_name, industry, location, website, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			industry = EXCLUDED.industry,
			location = EXCLUDED.location,
			website = EXCLUDED.website,
			description = EXCLUDED.description,
			updated_at = NOW()`
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.CompanyName, profile.Industry,
		profile.Location, profile.Website, profile.Description,
	)
	return err
}
