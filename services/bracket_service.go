package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/2capper/ballpark/brackets"
	"github.com/2capper/ballpark/models"
	"github.com/2capper/ballpark/repositories"
	"golang.org/x/sync/errgroup"
)

// BracketService генерирует сетку плей-офф из таблиц группового этапа и
// отдаёт её для отображения. Генерация не выдумывает расписание: строки
// слотов обязаны существовать заранее (их создаёт ScheduleService).
type BracketService interface {
	GenerateBracket(ctx context.Context, callerOrgID, tournamentID, divisionID string) ([]*models.Game, error)
	GetBracket(ctx context.Context, tournamentID, divisionID string) (*BracketView, error)
}

// BracketSlotView — слот шаблона, совмещённый с сохранённой строкой игры
// (если она есть), для рендеринга сетки.
type BracketSlotView struct {
	SlotKey   string            `json:"slot_key"`
	RoundName string            `json:"round_name"`
	Slot      models.BracketSlot `json:"slot"`
	Game      *models.Game      `json:"game,omitempty"`
}

type BracketView struct {
	Format models.PlayoffFormat `json:"format"`
	Slots  []BracketSlotView    `json:"slots"`
}

type bracketService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	divisionRepo   repositories.DivisionRepository
	poolRepo       repositories.PoolRepository
	teamRepo       repositories.TeamRepository
	gameRepo       repositories.GameRepository
	hub            *brackets.Hub
	snapshots      SnapshotService
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	divisionRepo repositories.DivisionRepository,
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	hub *brackets.Hub,
	snapshots SnapshotService,
) BracketService {
	return &bracketService{
		db:             db,
		tournamentRepo: tournamentRepo,
		divisionRepo:   divisionRepo,
		poolRepo:       poolRepo,
		teamRepo:       teamRepo,
		gameRepo:       gameRepo,
		hub:            hub,
		snapshots:      snapshots,
	}
}

// divisionData — всё, что нужно генератору: пулы, команды и завершённые
// игры группового этапа дивизиона.
type divisionData struct {
	pools []*models.Pool
	teams []*models.Team
	games []*models.Game
}

// GenerateBracket пересобирает составы сетки по текущим таблицам.
// Деструктивно для прежних назначений (и идемпотентно при неизменных
// таблицах), но расписание и площадки слотов не трогает. Источники типа
// «победитель игры» остаются как есть — их заполняет каскад победителей.
func (s *bracketService) GenerateBracket(ctx context.Context, callerOrgID, tournamentID, divisionID string) ([]*models.Game, error) {
	tournament, division, err := loadScope(ctx, s.tournamentRepo, s.divisionRepo, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}
	if err := checkOrganization(tournament, callerOrgID); err != nil {
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

	seeds := brackets.ExtractSeeds(brackets.ExtractSeedsParams{
		Teams:     poolTeams,
		Pools:     pools,
		Games:     data.games,
		Format:    tournament.PlayoffFormat,
		Pattern:   tournament.SeedingPattern,
		PoolCount: tournament.PoolCount,
	})
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: division %s", ErrNoStandingsAvailable, division.ID)
	}

	template := brackets.SlotsForFormat(tournament.PlayoffFormat)
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, tournament.PlayoffFormat)
	}
	if maxSeed := brackets.MaxSeed(template); len(seeds) < maxSeed {
		return nil, fmt.Errorf("%w: template %s references seed %d, got %d seeds",
			ErrIncompleteSeeding, tournament.PlayoffFormat, maxSeed, len(seeds))
	}

	seedMap := make(map[int]string, len(seeds))
	for _, seeded := range seeds {
		seedMap[seeded.Seed] = seeded.TeamID
	}

	var generated []*models.Game
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		existing, lockErr := s.gameRepo.LockPlayoffByDivision(ctx, tx, divisionID)
		if lockErr != nil {
			return fmt.Errorf("failed to lock playoff games for division %s: %w", divisionID, lockErr)
		}
		if len(existing) == 0 {
			return fmt.Errorf("%w: division %s", ErrSlotsNotScheduled, division.ID)
		}

		for _, game := range existing {
			home, away := resolveSlotTeams(game, seedMap)
			if updErr := s.gameRepo.UpdateTeams(ctx, tx, game.ID, home, away); updErr != nil {
				return fmt.Errorf("failed to assign teams for playoff game %s: %w", game.ID, updErr)
			}
		}

		var listErr error
		generated, listErr = s.gameRepo.ListPlayoffByDivision(ctx, tx, divisionID)
		return listErr
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(tournamentID, brackets.Event{
		Type:         brackets.EventBracketUpdated,
		TournamentID: tournamentID,
		Payload:      generated,
	})
	s.publishSnapshot(tournamentID, divisionID)

	return generated, nil
}

// GetBracket отдаёт шаблон формата, совмещённый с сохранёнными строками
// игр плей-офф.
func (s *bracketService) GetBracket(ctx context.Context, tournamentID, divisionID string) (*BracketView, error) {
	tournament, division, err := loadScope(ctx, s.tournamentRepo, s.divisionRepo, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.ListPlayoffByDivision(ctx, nil, division.ID)
	if err != nil {
		return nil, err
	}
	return buildBracketView(tournament.PlayoffFormat, games)
}

// buildBracketView совмещает шаблон формата с сохранёнными строками игр по
// ключу слота. Используется и для ответа API, и для снапшотов.
func buildBracketView(format models.PlayoffFormat, games []*models.Game) (*BracketView, error) {
	template := brackets.SlotsForFormat(format)
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	gamesByKey := make(map[string]*models.Game, len(games))
	for _, g := range games {
		if g.PlayoffRound == nil || g.PlayoffGameNumber == nil {
			continue
		}
		gamesByKey[brackets.SlotKey(*g.PlayoffRound, *g.PlayoffGameNumber)] = g
	}

	totalRounds := brackets.TotalRounds(template)
	view := &BracketView{Format: format, Slots: make([]BracketSlotView, 0, len(template))}
	for _, slot := range template {
		key := brackets.SlotKey(slot.Round, slot.GameNumber)
		view.Slots = append(view.Slots, BracketSlotView{
			SlotKey:   key,
			RoundName: brackets.RoundName(slot.Round, totalRounds),
			Slot:      slot,
			Game:      gamesByKey[key],
		})
	}
	return view, nil
}

// loadDivisionData загружает пулы, команды и завершённые игры группового
// этапа параллельно — по образцу полной выборки данных турнира.
func loadDivisionData(
	ctx context.Context,
	poolRepo repositories.PoolRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	divisionID string,
) (*divisionData, error) {
	data := &divisionData{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pools, err := poolRepo.ListByDivision(gCtx, nil, divisionID)
		if err != nil {
			return fmt.Errorf("failed to list pools for division %s: %w", divisionID, err)
		}
		data.pools = pools
		return nil
	})
	g.Go(func() error {
		teams, err := teamRepo.ListByDivision(gCtx, nil, divisionID)
		if err != nil {
			return fmt.Errorf("failed to list teams for division %s: %w", divisionID, err)
		}
		data.teams = teams
		return nil
	})
	g.Go(func() error {
		games, err := gameRepo.ListCompletedPoolPlayByDivision(gCtx, nil, divisionID)
		if err != nil {
			return fmt.Errorf("failed to list completed games for division %s: %w", divisionID, err)
		}
		data.games = games
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// poolPlayTeams отбирает незарезервированные пулы и их команды: команды,
// приписанные к пулу плей-офф (или вовсе без пула), в посеве не участвуют.
func poolPlayTeams(data *divisionData, division *models.Division) ([]*models.Team, []*models.Pool) {
	pools := make([]*models.Pool, 0, len(data.pools))
	poolIDs := make(map[string]bool, len(data.pools))
	for _, pool := range data.pools {
		if division.PlayoffPoolID != nil && pool.ID == *division.PlayoffPoolID {
			continue
		}
		pools = append(pools, pool)
		poolIDs[pool.ID] = true
	}

	teams := make([]*models.Team, 0, len(data.teams))
	for _, team := range data.teams {
		if team.PoolID != nil && poolIDs[*team.PoolID] {
			teams = append(teams, team)
		}
	}
	return teams, pools
}

// resolveSlotTeams подставляет команды по посеву. Источники «победитель
// игры» сохраняют текущее значение стороны: их заполняет каскад.
func resolveSlotTeams(game *models.Game, seedMap map[int]string) (home, away *string) {
	home = game.HomeTeamID
	away = game.AwayTeamID
	if game.Team1Source != nil && game.Team1Source.Type == models.SlotSourceSeed {
		if teamID, ok := seedMap[game.Team1Source.Seed]; ok {
			home = &teamID
		}
	}
	if game.Team2Source != nil && game.Team2Source.Type == models.SlotSourceSeed {
		if teamID, ok := seedMap[game.Team2Source.Seed]; ok {
			away = &teamID
		}
	}
	return home, away
}

func (s *bracketService) publishSnapshot(tournamentID, divisionID string) {
	if s.snapshots == nil {
		return
	}
	go func() {
		if err := s.snapshots.PublishDivision(context.Background(), tournamentID, divisionID); err != nil {
			slog.Error("failed to publish division snapshot",
				slog.String("tournament_id", tournamentID),
				slog.String("division_id", divisionID),
				slog.Any("error", err))
		}
	}()
}
