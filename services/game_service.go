package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2capper/ballpark/brackets"
	"github.com/2capper/ballpark/models"
	"github.com/2capper/ballpark/repositories"
	"github.com/2capper/ballpark/standings"
)

// GameUpdateInput — частичное обновление результата игры. Отсутствующие
// поля не меняются.
type GameUpdateInput struct {
	HomeScore         *int                  `json:"home_score,omitempty"`
	AwayScore         *int                  `json:"away_score,omitempty"`
	HomeInningsBatted *float64              `json:"home_innings_batted,omitempty"`
	AwayInningsBatted *float64              `json:"away_innings_batted,omitempty"`
	ForfeitStatus     *models.ForfeitStatus `json:"forfeit_status,omitempty"`
	Status            *models.GameStatus    `json:"status,omitempty"`
}

// GameService — ввод счёта. Для игр плей-офф завершение игры в той же
// транзакции протягивает победителя во все слоты, ссылающиеся на неё.
type GameService interface {
	UpdateGame(ctx context.Context, callerOrgID, gameID string, input GameUpdateInput) (*models.Game, error)
	GetGame(ctx context.Context, gameID string) (*models.Game, error)
}

type gameService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	gameRepo       repositories.GameRepository
	hub            *brackets.Hub
	snapshots      SnapshotService
}

func NewGameService(db *sql.DB, tournamentRepo repositories.TournamentRepository, gameRepo repositories.GameRepository, hub *brackets.Hub, snapshots SnapshotService) GameService {
	return &gameService{db: db, tournamentRepo: tournamentRepo, gameRepo: gameRepo, hub: hub, snapshots: snapshots}
}

func (s *gameService) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, nil, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// UpdateGame применяет обновление результата. Если игра — завершаемая игра
// плей-офф с заданными раундом и номером, строки плей-офф дивизиона
// блокируются и каскад победителей выполняется до коммита: конкурирующие
// обновления сериализуются, а не чередуются.
func (s *gameService) UpdateGame(ctx context.Context, callerOrgID, gameID string, input GameUpdateInput) (*models.Game, error) {
	if err := validateGameUpdate(input); err != nil {
		return nil, err
	}

	var updated *models.Game
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		game, err := s.gameRepo.GetByID(ctx, tx, gameID)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return err
		}

		tournament, err := s.tournamentRepo.GetByID(ctx, tx, game.TournamentID)
		if err != nil {
			return err
		}
		if err := checkOrganization(tournament, callerOrgID); err != nil {
			return err
		}

		cascading := game.IsPlayoff && game.PlayoffRound != nil && game.PlayoffGameNumber != nil

		var playoffGames []*models.Game
		if cascading {
			playoffGames, err = s.gameRepo.LockPlayoffByDivision(ctx, tx, game.DivisionID)
			if err != nil {
				return fmt.Errorf("failed to lock playoff games for division %s: %w", game.DivisionID, err)
			}
		}

		applyGameUpdate(game, input)
		if err := s.gameRepo.UpdateResult(ctx, tx, game); err != nil {
			return fmt.Errorf("failed to update game %s: %w", gameID, err)
		}

		if cascading && game.Status == models.GameStatusCompleted {
			for _, assignment := range cascadeAssignments(game, playoffGames) {
				if err := s.gameRepo.UpdateTeams(ctx, tx, assignment.gameID, assignment.home, assignment.away); err != nil {
					return fmt.Errorf("failed to cascade winner into game %s: %w", assignment.gameID, err)
				}
			}
		}

		updated = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(updated.TournamentID, brackets.Event{
		Type:         brackets.EventGameUpdated,
		TournamentID: updated.TournamentID,
		Payload:      updated,
	})
	if s.snapshots != nil && updated.IsPlayoff {
		tournamentID, divisionID := updated.TournamentID, updated.DivisionID
		go func() {
			if err := s.snapshots.PublishDivision(context.Background(), tournamentID, divisionID); err != nil {
				slog.Error("failed to publish division snapshot",
					slog.String("tournament_id", tournamentID),
					slog.String("division_id", divisionID),
					slog.Any("error", err))
			}
		}()
	}
	return updated, nil
}

func validateGameUpdate(input GameUpdateInput) error {
	if input.HomeScore != nil && *input.HomeScore < 0 {
		return ErrInvalidScore
	}
	if input.AwayScore != nil && *input.AwayScore < 0 {
		return ErrInvalidScore
	}
	return nil
}

func applyGameUpdate(game *models.Game, input GameUpdateInput) {
	if input.HomeScore != nil {
		game.HomeScore = input.HomeScore
	}
	if input.AwayScore != nil {
		game.AwayScore = input.AwayScore
	}
	if input.HomeInningsBatted != nil {
		game.HomeInningsBatted = input.HomeInningsBatted
	}
	if input.AwayInningsBatted != nil {
		game.AwayInningsBatted = input.AwayInningsBatted
	}
	if input.ForfeitStatus != nil {
		game.ForfeitStatus = *input.ForfeitStatus
	}
	if input.Status != nil {
		game.Status = *input.Status
	}
}

type teamAssignment struct {
	gameID string
	home   *string
	away   *string
}

// cascadeAssignments находит победителя завершённой игры и все слоты
// дивизиона, чьи источники ссылаются на неё. На одну игру может ссылаться
// несколько слотов — обновляется каждый. Ничья без форфейта победителя не
// даёт, и каскад не выполняется.
func cascadeAssignments(completed *models.Game, playoffGames []*models.Game) []teamAssignment {
	winner := standings.WinnerTeamID(completed)
	if winner == "" {
		return nil
	}
	round, gameNumber := *completed.PlayoffRound, *completed.PlayoffGameNumber

	var assignments []teamAssignment
	for _, g := range playoffGames {
		if g.ID == completed.ID {
			continue
		}
		home, away := g.HomeTeamID, g.AwayTeamID
		changed := false
		if g.Team1Source.ReferencesGame(round, gameNumber) {
			w := winner
			home = &w
			changed = true
		}
		if g.Team2Source.ReferencesGame(round, gameNumber) {
			w := winner
			away = &w
			changed = true
		}
		if changed {
			assignments = append(assignments, teamAssignment{gameID: g.ID, home: home, away: away})
		}
	}
	return assignments
}
