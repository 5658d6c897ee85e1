package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/2capper/ballpark/models"
)

var ErrDivisionNotFound = errors.New("division not found")

type DivisionRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Division, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Division, error)
}

type postgresDivisionRepository struct {
	db *sql.DB
}

func NewPostgresDivisionRepository(db *sql.DB) DivisionRepository {
	return &postgresDivisionRepository{db: db}
}

func (r *postgresDivisionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresDivisionRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Division, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, tournament_id, playoff_pool_id
		FROM divisions
		WHERE id = $1`

	d := &models.Division{}
	err := executor.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.TournamentID, &d.PlayoffPoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDivisionNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *postgresDivisionRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]*models.Division, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, tournament_id, playoff_pool_id
		FROM divisions
		WHERE tournament_id = $1
		ORDER BY name ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := make([]*models.Division, 0)
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.TournamentID, &d.PlayoffPoolID); err != nil {
			return nil, err
		}
		divisions = append(divisions, &d)
	}
	return divisions, rows.Err()
}
