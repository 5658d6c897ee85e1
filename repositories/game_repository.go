package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/2capper/ballpark/models"
	"github.com/lib/pq"
)

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameTeamInvalid     = errors.New("game team conflict or invalid")
	ErrGameDivisionInvalid = errors.New("game division conflict or invalid")
	ErrPlayoffSlotConflict = errors.New("playoff slot already occupied for this division")
)

const gameColumns = `
	id, tournament_id, division_id, pool_id,
	home_team_id, away_team_id,
	home_score, away_score, home_innings_batted, away_innings_batted,
	forfeit_status, status,
	is_playoff, playoff_round, playoff_game_number, team1_source, team2_source,
	scheduled_at, diamond_id, created_at`

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Game, error)
	ListCompletedPoolPlayByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Game, error)
	ListPlayoffByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Game, error)
	LockPlayoffByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Game, error)
	UpdateSchedule(ctx context.Context, exec SQLExecutor, id string, scheduledAt *time.Time, diamondID *string) error
	UpdateTeams(ctx context.Context, exec SQLExecutor, id string, homeTeamID, awayTeamID *string) error
	UpdateResult(ctx context.Context, exec SQLExecutor, game *models.Game) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO games
			(id, tournament_id, division_id, pool_id,
			 home_team_id, away_team_id,
			 home_score, away_score, home_innings_batted, away_innings_batted,
			 forfeit_status, status,
			 is_playoff, playoff_round, playoff_game_number, team1_source, team2_source,
			 scheduled_at, diamond_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at`

	err := executor.QueryRowContext(ctx, query,
		game.ID,
		game.TournamentID,
		game.DivisionID,
		game.PoolID,
		game.HomeTeamID,
		game.AwayTeamID,
		game.HomeScore,
		game.AwayScore,
		game.HomeInningsBatted,
		game.AwayInningsBatted,
		game.ForfeitStatus,
		game.Status,
		game.IsPlayoff,
		game.PlayoffRound,
		game.PlayoffGameNumber,
		game.Team1Source,
		game.Team2Source,
		game.ScheduledAt,
		game.DiamondID,
	).Scan(&game.CreatedAt)

	return r.handleGameError(err)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Game, error) {
	executor := r.getExecutor(exec)
	row := executor.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (r *postgresGameRepository) ListCompletedPoolPlayByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE division_id = $1 AND is_playoff = FALSE AND status = $2
		ORDER BY scheduled_at ASC NULLS LAST, id ASC`

	return r.listGames(ctx, executor, query, divisionID, models.GameStatusCompleted)
}

func (r *postgresGameRepository) ListPlayoffByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE division_id = $1 AND is_playoff = TRUE
		ORDER BY playoff_round ASC, playoff_game_number ASC`

	return r.listGames(ctx, executor, query, divisionID)
}

// LockPlayoffByDivision читает строки плей-офф дивизиона с блокировкой
// FOR UPDATE. Вызывается только внутри транзакции: конкурирующие
// сохранения расписания и каскады победителей сериализуются на этих
// строках вместо чередования вставок и удалений.
func (r *postgresGameRepository) LockPlayoffByDivision(ctx context.Context, exec SQLExecutor, divisionID string) ([]*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE division_id = $1 AND is_playoff = TRUE
		ORDER BY playoff_round ASC, playoff_game_number ASC
		FOR UPDATE`

	return r.listGames(ctx, executor, query, divisionID)
}

// UpdateSchedule меняет только дату/время и площадку. Составы и результат
// слота сохранение расписания не трогает.
func (r *postgresGameRepository) UpdateSchedule(ctx context.Context, exec SQLExecutor, id string, scheduledAt *time.Time, diamondID *string) error {
	executor := r.getExecutor(exec)
	query := `UPDATE games SET scheduled_at = $1, diamond_id = $2 WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, scheduledAt, diamondID, id)
	if err != nil {
		return r.handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateTeams(ctx context.Context, exec SQLExecutor, id string, homeTeamID, awayTeamID *string) error {
	executor := r.getExecutor(exec)
	query := `UPDATE games SET home_team_id = $1, away_team_id = $2 WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, homeTeamID, awayTeamID, id)
	if err != nil {
		return r.handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateResult(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE games
		SET home_score = $1, away_score = $2,
		    home_innings_batted = $3, away_innings_batted = $4,
		    forfeit_status = $5, status = $6
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		game.HomeScore,
		game.AwayScore,
		game.HomeInningsBatted,
		game.AwayInningsBatted,
		game.ForfeitStatus,
		game.Status,
		game.ID,
	)
	if err != nil {
		return r.handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) listGames(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		game, scanErr := scanGame(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// nullSlotSource сканирует nullable jsonb-колонку источника слота.
type nullSlotSource struct {
	source *models.SlotSource
}

func (n *nullSlotSource) Scan(src interface{}) error {
	if src == nil {
		n.source = nil
		return nil
	}
	s := new(models.SlotSource)
	if err := s.Scan(src); err != nil {
		return err
	}
	n.source = s
	return nil
}

func scanGame(scanner interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var g models.Game
	var team1Source, team2Source nullSlotSource
	err := scanner.Scan(
		&g.ID,
		&g.TournamentID,
		&g.DivisionID,
		&g.PoolID,
		&g.HomeTeamID,
		&g.AwayTeamID,
		&g.HomeScore,
		&g.AwayScore,
		&g.HomeInningsBatted,
		&g.AwayInningsBatted,
		&g.ForfeitStatus,
		&g.Status,
		&g.IsPlayoff,
		&g.PlayoffRound,
		&g.PlayoffGameNumber,
		&team1Source,
		&team2Source,
		&g.ScheduledAt,
		&g.DiamondID,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	g.Team1Source = team1Source.source
	g.Team2Source = team2Source.source
	return &g, nil
}

func (r *postgresGameRepository) handleGameError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "games_division_id_fkey":
				return ErrGameDivisionInvalid
			case "games_home_team_id_fkey", "games_away_team_id_fkey":
				return ErrGameTeamInvalid
			}
		case "23505": // unique_violation
			if pqErr.Constraint == "games_division_playoff_slot_key" {
				return ErrPlayoffSlotConflict
			}
		}
	}
	return err
}
