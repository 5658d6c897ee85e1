package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/2capper/ballpark/models"
)

var ErrDiamondNotFound = errors.New("diamond not found")

type DiamondRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Diamond, error)
}

type postgresDiamondRepository struct {
	db *sql.DB
}

func NewPostgresDiamondRepository(db *sql.DB) DiamondRepository {
	return &postgresDiamondRepository{db: db}
}

func (r *postgresDiamondRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresDiamondRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Diamond, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, organization_id, address FROM diamonds WHERE id = $1`

	d := &models.Diamond{}
	err := executor.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.OrganizationID, &d.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDiamondNotFound
		}
		return nil, err
	}
	return d, nil
}
