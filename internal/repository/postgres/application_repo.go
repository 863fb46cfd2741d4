package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the postgres error code raised when the
// (candidate_id, job_id) unique index rejects a duplicate application.
const uniqueViolation = "23505"

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id, job_id, candidate_id, employer_id, candidate_name, candidate_email,
	job_title, employer_name, message, cv_url, COALESCE(cv_name, ''), status, created_at`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.CandidateID, &a.EmployerID, &a.CandidateName, &a.CandidateEmail,
		&a.JobTitle, &a.EmployerName, &a.Message, &a.CVUrl, &a.CVName, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_id, candidate_id, employer_id, candidate_name, candidate_email,
			job_title, employer_name, message, cv_url, cv_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.CandidateID, app.EmployerID, app.CandidateName, app.CandidateEmail,
		app.JobTitle, app.EmployerName, app.Message, app.CVUrl, app.CVName, app.Status, app.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) GetByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`
	return r.fetch(ctx, query, candidateID)
}

func (r *applicationRepo) GetByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE employer_id = $1 ORDER BY created_at DESC`
	return r.fetch(ctx, query, employerID)
}

func (r *applicationRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) Exists(ctx context.Context, candidateID, jobID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, candidateID, jobID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) AttachCV(ctx context.Context, id, cvURL, cvName string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE applications SET cv_url = $2, cv_name = $3 WHERE id = $1`, id, cvURL, cvName)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&total)
	return total, err
}
