package services

import (
	"context"
	"fmt"

	"github.com/2capper/ballpark/models"
	"github.com/2capper/ballpark/repositories"
	"github.com/2capper/ballpark/standings"
)

// PoolStandings — таблица одного пула, посчитанная только по играм внутри
// него.
type PoolStandings struct {
	PoolID    string             `json:"pool_id"`
	PoolName  string             `json:"pool_name"`
	Standings []*models.Standing `json:"standings"`
}

// StandingsView — превью таблиц дивизиона: сводная таблица по всем играм
// группового этапа плюс таблицы по пулам.
type StandingsView struct {
	DivisionID string             `json:"division_id"`
	Overall    []*models.Standing `json:"overall"`
	Pools      []PoolStandings    `json:"pools"`
}

// StandingsService отдаёт текущие таблицы без какой-либо записи: организатор
// смотрит, как лягут посевы, пока групповой этап ещё идёт.
type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID, divisionID string) (*StandingsView, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	divisionRepo   repositories.DivisionRepository
	poolRepo       repositories.PoolRepository
	teamRepo       repositories.TeamRepository
	gameRepo       repositories.GameRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	divisionRepo repositories.DivisionRepository,
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		divisionRepo:   divisionRepo,
		poolRepo:       poolRepo,
		teamRepo:       teamRepo,
		gameRepo:       gameRepo,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID, divisionID string) (*StandingsView, error) {
	_, division, err := loadScope(ctx, s.tournamentRepo, s.divisionRepo, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}

	data, err := loadDivisionData(ctx, s.poolRepo, s.teamRepo, s.gameRepo, division.ID)
	if err != nil {
		return nil, err
	}

	poolTeams, pools := poolPlayTeams(data, division)
	if len(poolTeams) == 0 {
		return nil, fmt.Errorf("%w: division %s", ErrDivisionHasNoTeams, division.ID)
	}

	return buildStandingsView(division, poolTeams, pools, data.games), nil
}

func buildStandingsView(division *models.Division, teams []*models.Team, pools []*models.Pool, games []*models.Game) *StandingsView {
	view := &StandingsView{
		DivisionID: division.ID,
		Overall:    standings.Calculate(teams, games),
		Pools:      make([]PoolStandings, 0, len(pools)),
	}

	teamsByPool := make(map[string][]*models.Team, len(pools))
	for _, team := range teams {
		if team.PoolID == nil {
			continue
		}
		teamsByPool[*team.PoolID] = append(teamsByPool[*team.PoolID], team)
	}

	for _, pool := range pools {
		poolTeams := teamsByPool[pool.ID]
		if len(poolTeams) == 0 {
			continue
		}
		table := standings.Calculate(poolTeams, games)
		for _, row := range table {
			name := pool.Name
			rank := row.Rank
			row.PoolName = &name
			row.PoolRank = &rank
		}
		view.Pools = append(view.Pools, PoolStandings{
			PoolID:    pool.ID,
			PoolName:  pool.Name,
			Standings: table,
		})
	}
	return view
}
