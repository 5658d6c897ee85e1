package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/2capper/ballpark/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Tournament, error)
	ListActive(ctx context.Context, exec SQLExecutor) ([]*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, organization_id, start_date, end_date, timezone,
		       playoff_format, seeding_pattern, pool_count, status, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.OrganizationID,
		&t.StartDate,
		&t.EndDate,
		&t.Timezone,
		&t.PlayoffFormat,
		&t.SeedingPattern,
		&t.PoolCount,
		&t.Status,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) ListActive(ctx context.Context, exec SQLExecutor) ([]*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, organization_id, start_date, end_date, timezone,
		       playoff_format, seeding_pattern, pool_count, status, created_at
		FROM tournaments
		WHERE status = $1
		ORDER BY start_date, id`

	rows, err := executor.QueryContext(ctx, query, models.TournamentStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		t := &models.Tournament{}
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.OrganizationID,
			&t.StartDate,
			&t.EndDate,
			&t.Timezone,
			&t.PlayoffFormat,
			&t.SeedingPattern,
			&t.PoolCount,
			&t.Status,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}
