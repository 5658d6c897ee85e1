package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2capper/ballpark/models"
	"github.com/2capper/ballpark/repositories"
	"github.com/2capper/ballpark/roster"
)

// Минимальная оценка совпадения названий по шкале roster.Similarity:
// ниже — считаем, что по ссылке чужая команда.
const minRosterMatchScore = 6

// RosterService импортирует состав команды со страницы лиги по сохранённой
// ссылке и записывает его в команду.
type RosterService interface {
	ImportRoster(ctx context.Context, callerOrgID, teamID string) ([]models.RosterEntry, error)
}

type rosterService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	fetcher        roster.Fetcher
}

func NewRosterService(tournamentRepo repositories.TournamentRepository, teamRepo repositories.TeamRepository, fetcher roster.Fetcher) RosterService {
	return &rosterService{tournamentRepo: tournamentRepo, teamRepo: teamRepo, fetcher: fetcher}
}

// ImportRoster скачивает состав и сверяет название со страницы с названием
// команды: страница без названия импортируется как есть (часть страниц лиги
// отдают состав без заголовка), явное несовпадение — отказ.
func (s *rosterService) ImportRoster(ctx context.Context, callerOrgID, teamID string) ([]models.RosterEntry, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, nil, team.TournamentID)
	if err != nil {
		return nil, err
	}
	if err := checkOrganization(tournament, callerOrgID); err != nil {
		return nil, err
	}

	if team.RosterURL == nil || *team.RosterURL == "" {
		return nil, fmt.Errorf("%w: team %s", ErrRosterURLMissing, team.ID)
	}

	scrapedName, entries, err := s.fetcher.FetchRoster(ctx, *team.RosterURL)
	if err != nil {
		return nil, err
	}

	if scrapedName != "" {
		if score := roster.Similarity(team.Name, scrapedName); score < minRosterMatchScore {
			return nil, fmt.Errorf("%w: page says %q, team is %q (score %d)",
				ErrRosterNoMatch, scrapedName, team.Name, score)
		}
	}

	if err := s.teamRepo.UpdateRoster(ctx, nil, team.ID, entries); err != nil {
		return nil, fmt.Errorf("failed to save roster for team %s: %w", team.ID, err)
	}

	slog.Info("roster imported",
		slog.String("team_id", team.ID),
		slog.Int("entries", len(entries)))
	return entries, nil
}
