package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, employer_id, employer_name, title, description, location, type, salary, status, created_at, updated_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.EmployerName, &j.Title, &j.Description,
		&j.Location, &j.Type, &j.Salary, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.EmployerID, job.EmployerName, job.Title, job.Description,
		job.Location, job.Type, job.Salary, job.Status, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) FetchActive(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = 'active' ORDER BY created_at DESC`
	return r.fetch(ctx, query)
}

func (r *jobRepo) FetchByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`
	return r.fetch(ctx, query, employerID)
}

func (r *jobRepo) FetchAll(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	jobs, err := r.fetch(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		location = $4,
		type = $5,
		salary = $6,
		status = $7,
		updated_at = $8
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location,
		job.Type, job.Salary, job.Status, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateEmployerName(ctx context.Context, employerID, name string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE jobs SET employer_name = $2, updated_at = NOW() WHERE employer_id = $1`,
		employerID, name)
	return err
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
