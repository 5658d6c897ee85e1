package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/2capper/ballpark/models"
)

var ErrPoolNotFound = errors.New("pool not found")

type PoolRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Pool, error)
	ListByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Pool, error)
}

type postgresPoolRepository struct {
	db *sql.DB
}

func NewPostgresPoolRepository(db *sql.DB) PoolRepository {
	return &postgresPoolRepository{db: db}
}

func (r *postgresPoolRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPoolRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Pool, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, division_id FROM pools WHERE id = $1`

	p := &models.Pool{}
	err := executor.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.DivisionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPoolRepository) ListByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Pool, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, division_id FROM pools WHERE division_id = $1 ORDER BY name ASC`

	rows, err := executor.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pools := make([]*models.Pool, 0)
	for rows.Next() {
		var p models.Pool
		if err := rows.Scan(&p.ID, &p.Name, &p.DivisionID); err != nil {
			return nil, err
		}
		pools = append(pools, &p)
	}
	return pools, rows.Err()
}
