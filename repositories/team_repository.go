package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2capper/ballpark/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error)
	ListByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Team, error)
	UpdateRoster(ctx context.Context, exec SQLExecutor, teamID string, entries []models.RosterEntry) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, city, tournament_id, division_id, pool_id, roster_url
		FROM teams
		WHERE id = $1`

	t := &models.Team{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.City, &t.TournamentID, &t.DivisionID, &t.PoolID, &t.RosterURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, city, tournament_id, division_id, pool_id, roster_url
		FROM teams
		WHERE division_id = $1
		ORDER BY name ASC`

	rows, err := executor.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.City, &t.TournamentID, &t.DivisionID, &t.PoolID, &t.RosterURL); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateRoster(ctx context.Context, exec SQLExecutor, teamID string, entries []models.RosterEntry) error {
	executor := r.getExecutor(exec)

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal roster entries: %w", err)
	}

	query := `UPDATE teams SET roster = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, payload, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
