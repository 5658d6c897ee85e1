package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/2capper/ballpark/repositories"
	"github.com/2capper/ballpark/storage"
)

// SnapshotService публикует JSON-снапшоты таблиц и сетки дивизиона в
// объектное хранилище: публичные табло читают их напрямую, минуя API.
type SnapshotService interface {
	PublishDivision(ctx context.Context, tournamentID, divisionID string) error
	PublishActive(ctx context.Context) error
}

// snapshotEnvelope — обёртка снапшота с временем генерации, чтобы табло
// могло показать давность данных.
type snapshotEnvelope struct {
	TournamentID string      `json:"tournament_id"`
	DivisionID   string      `json:"division_id"`
	GeneratedAt  time.Time   `json:"generated_at"`
	Data         interface{} `json:"data"`
}

type snapshotService struct {
	tournamentRepo repositories.TournamentRepository
	divisionRepo   repositories.DivisionRepository
	poolRepo       repositories.PoolRepository
	teamRepo       repositories.TeamRepository
	gameRepo       repositories.GameRepository
	uploader       storage.FileUploader
}

func NewSnapshotService(
	tournamentRepo repositories.TournamentRepository,
	divisionRepo repositories.DivisionRepository,
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	uploader storage.FileUploader,
) SnapshotService {
	return &snapshotService{
		tournamentRepo: tournamentRepo,
		divisionRepo:   divisionRepo,
		poolRepo:       poolRepo,
		teamRepo:       teamRepo,
		gameRepo:       gameRepo,
		uploader:       uploader,
	}
}

// PublishDivision выгружает standings.json и bracket.json дивизиона.
// Частичный успех допустим: таблицы без сетки лучше, чем ничего, поэтому
// ошибки копятся и возвращаются одной.
func (s *snapshotService) PublishDivision(ctx context.Context, tournamentID, divisionID string) error {
	tournament, division, err := loadScope(ctx, s.tournamentRepo, s.divisionRepo, tournamentID, divisionID)
	if err != nil {
		return err
	}

	data, err := loadDivisionData(ctx, s.poolRepo, s.teamRepo, s.gameRepo, division.ID)
	if err != nil {
		return err
	}

	var errs []error

	poolTeams, pools := poolPlayTeams(data, division)
	if len(poolTeams) > 0 {
		view := buildStandingsView(division, poolTeams, pools, data.games)
		if err := s.upload(ctx, tournamentID, divisionID, "standings.json", view); err != nil {
			errs = append(errs, err)
		}
	}

	playoffGames, err := s.gameRepo.ListPlayoffByDivision(ctx, nil, division.ID)
	if err != nil {
		errs = append(errs, err)
	} else if bracketView, viewErr := buildBracketView(tournament.PlayoffFormat, playoffGames); viewErr == nil {
		if err := s.upload(ctx, tournamentID, divisionID, "bracket.json", bracketView); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// PublishActive перевыгружает снапшоты всех дивизионов идущих турниров.
// Страховка на случай пропущенной публикации по событию: снапшоты в итоге
// сходятся с БД.
func (s *snapshotService) PublishActive(ctx context.Context) error {
	tournaments, err := s.tournamentRepo.ListActive(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list active tournaments: %w", err)
	}

	var errs []error
	for _, tournament := range tournaments {
		divisions, err := s.divisionRepo.ListByTournament(ctx, nil, tournament.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to list divisions for tournament %s: %w", tournament.ID, err))
			continue
		}
		for _, division := range divisions {
			if err := s.PublishDivision(ctx, tournament.ID, division.ID); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (s *snapshotService) upload(ctx context.Context, tournamentID, divisionID, name string, data interface{}) error {
	payload, err := json.Marshal(snapshotEnvelope{
		TournamentID: tournamentID,
		DivisionID:   divisionID,
		GeneratedAt:  time.Now().UTC(),
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", name, err)
	}

	key := fmt.Sprintf("snapshots/%s/%s/%s", tournamentID, divisionID, name)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}

	slog.Debug("division snapshot published",
		slog.String("key", result.Key),
		slog.String("location", result.Location))
	return nil
}
