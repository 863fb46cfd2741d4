package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetStats(ctx context.Context) (*domain.PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'candidate'),
			(SELECT COUNT(*) FROM users WHERE role = 'employer'),
			(SELECT COUNT(*) FROM jobs),
			(SELECT COUNT(*) FROM jobs WHERE status = 'active'),
			(SELECT COUNT(*) FROM applications)`

	var s domain.PlatformStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.TotalUsers, &s.TotalCandidates, &s.TotalEmployers,
		&s.TotalJobs, &s.ActiveJobs, &s.TotalApplications,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *adminRepo) ListUsers(ctx context.Context, role domain.Role, limit, offset int) ([]domain.User, int64, error) {
	query := `SELECT id, email, name, role, created_at FROM users
	          WHERE ($1 = '' OR role = $1)
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, string(role), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE ($1 = '' OR role = $1)`, string(role)).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
