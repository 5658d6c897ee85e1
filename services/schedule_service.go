package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2capper/ballpark/brackets"
	"github.com/2capper/ballpark/models"
	"github.com/2capper/ballpark/repositories"
	"github.com/google/uuid"
)

// SlotInput — расписание одного слота сетки в том виде, в котором его
// присылает клиент. Дата и время интерпретируются в часовом поясе турнира.
type SlotInput struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Time      string  `json:"time"` // HH:MM
	DiamondID *string `json:"diamond_id,omitempty"`
}

// ScheduleService реализует сохранение расписания слотов плей-офф:
// дата/время/площадка живут независимо от составов, поэтому слоты можно
// расписать до того, как закончится групповой этап.
type ScheduleService interface {
	SaveSlots(ctx context.Context, callerOrgID, tournamentID, divisionID string, slots map[string]SlotInput) ([]*models.Game, error)
}

type scheduleService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	divisionRepo   repositories.DivisionRepository
	diamondRepo    repositories.DiamondRepository
	gameRepo       repositories.GameRepository
}

func NewScheduleService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	divisionRepo repositories.DivisionRepository,
	diamondRepo repositories.DiamondRepository,
	gameRepo repositories.GameRepository,
) ScheduleService {
	return &scheduleService{
		db:             db,
		tournamentRepo: tournamentRepo,
		divisionRepo:   divisionRepo,
		diamondRepo:    diamondRepo,
		gameRepo:       gameRepo,
	}
}

// resolvedSlot — проверенный вход для одного слота: позиция шаблона плюс
// разобранные дата и площадка.
type resolvedSlot struct {
	slot        models.BracketSlot
	scheduledAt time.Time
	diamondID   *string
}

// SaveSlots сверяет присланную карту слотов с существующими строками игр
// плей-офф и в одной транзакции создаёт, обновляет и удаляет строки.
// Пустая карта удаляет всё расписание плей-офф дивизиона. Обновление
// никогда не трогает составы и результат — только дату/время/площадку.
func (s *scheduleService) SaveSlots(ctx context.Context, callerOrgID, tournamentID, divisionID string, slots map[string]SlotInput) ([]*models.Game, error) {
	tournament, division, err := loadScope(ctx, s.tournamentRepo, s.divisionRepo, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}
	if err := checkOrganization(tournament, callerOrgID); err != nil {
		return nil, err
	}

	template := brackets.SlotsForFormat(tournament.PlayoffFormat)
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, tournament.PlayoffFormat)
	}
	if division.PlayoffPoolID == nil {
		return nil, fmt.Errorf("%w: division %s", ErrDivisionNoPlayoffPool, division.ID)
	}

	resolved, err := s.resolveSlots(ctx, tournament, template, slots)
	if err != nil {
		return nil, err
	}

	var saved []*models.Game
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		existing, lockErr := s.gameRepo.LockPlayoffByDivision(ctx, tx, divisionID)
		if lockErr != nil {
			return fmt.Errorf("failed to lock playoff games for division %s: %w", divisionID, lockErr)
		}

		plan := buildSlotPlan(existing, resolved)

		for _, gameID := range plan.remove {
			if delErr := s.gameRepo.Delete(ctx, tx, gameID); delErr != nil {
				return fmt.Errorf("failed to delete playoff game %s: %w", gameID, delErr)
			}
		}
		for _, upd := range plan.update {
			if updErr := s.gameRepo.UpdateSchedule(ctx, tx, upd.gameID, &upd.scheduledAt, upd.diamondID); updErr != nil {
				return fmt.Errorf("failed to reschedule playoff game %s: %w", upd.gameID, updErr)
			}
		}
		for _, rs := range plan.create {
			game := newPlayoffGame(tournament, division, rs)
			if createErr := s.gameRepo.Create(ctx, tx, game); createErr != nil {
				return fmt.Errorf("failed to create playoff game for slot %s: %w",
					brackets.SlotKey(rs.slot.Round, rs.slot.GameNumber), createErr)
			}
		}

		var listErr error
		saved, listErr = s.gameRepo.ListPlayoffByDivision(ctx, tx, divisionID)
		return listErr
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// resolveSlots валидирует ключи, даты и площадки до открытия транзакции.
func (s *scheduleService) resolveSlots(ctx context.Context, tournament *models.Tournament, template []models.BracketSlot, slots map[string]SlotInput) (map[string]resolvedSlot, error) {
	loc := tournamentLocation(tournament)

	resolved := make(map[string]resolvedSlot, len(slots))
	for key, input := range slots {
		round, gameNumber, err := brackets.ParseSlotKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
		}
		slot, ok := brackets.FindSlot(template, round, gameNumber)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not part of the %s template", ErrInvalidSlotKey, key, tournament.PlayoffFormat)
		}

		scheduledAt, err := time.ParseInLocation("2006-01-02 15:04", input.Date+" "+input.Time, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %s: %v", ErrDateOutOfRange, key, err)
		}
		if !dateWithinRange(scheduledAt, tournament.StartDate, tournament.EndDate, loc) {
			return nil, fmt.Errorf("%w: slot %s scheduled on %s", ErrDateOutOfRange, key, input.Date)
		}

		if input.DiamondID != nil {
			diamond, err := s.diamondRepo.GetByID(ctx, nil, *input.DiamondID)
			if err != nil {
				if errors.Is(err, repositories.ErrDiamondNotFound) {
					return nil, fmt.Errorf("%w: %q", ErrInvalidDiamond, *input.DiamondID)
				}
				return nil, err
			}
			if diamond.OrganizationID != tournament.OrganizationID {
				return nil, fmt.Errorf("%w: %q", ErrInvalidDiamond, *input.DiamondID)
			}
		}

		resolved[key] = resolvedSlot{slot: slot, scheduledAt: scheduledAt, diamondID: input.DiamondID}
	}
	return resolved, nil
}

type scheduleUpdate struct {
	gameID      string
	scheduledAt time.Time
	diamondID   *string
}

type slotPlan struct {
	create []resolvedSlot
	update []scheduleUpdate
	remove []string
}

// buildSlotPlan сверяет существующие строки плей-офф с присланной картой:
// присутствующий ключ с существующей строкой — обновление расписания,
// без строки — создание; строка, ключа которой больше нет, — удаление.
func buildSlotPlan(existing []*models.Game, resolved map[string]resolvedSlot) slotPlan {
	existingByKey := make(map[string]*models.Game, len(existing))
	for _, g := range existing {
		if g.PlayoffRound == nil || g.PlayoffGameNumber == nil {
			continue
		}
		existingByKey[brackets.SlotKey(*g.PlayoffRound, *g.PlayoffGameNumber)] = g
	}

	var plan slotPlan
	for key, rs := range resolved {
		if g, ok := existingByKey[key]; ok {
			plan.update = append(plan.update, scheduleUpdate{
				gameID:      g.ID,
				scheduledAt: rs.scheduledAt,
				diamondID:   rs.diamondID,
			})
			continue
		}
		plan.create = append(plan.create, rs)
	}
	for key, g := range existingByKey {
		if _, ok := resolved[key]; !ok {
			plan.remove = append(plan.remove, g.ID)
		}
	}
	return plan
}

// newPlayoffGame создаёт строку плей-офф: составы пустые, источники сторон
// берутся из шаблона и после создания не меняются.
func newPlayoffGame(tournament *models.Tournament, division *models.Division, rs resolvedSlot) *models.Game {
	round := rs.slot.Round
	gameNumber := rs.slot.GameNumber
	home := rs.slot.HomeSource
	away := rs.slot.AwaySource
	scheduledAt := rs.scheduledAt

	return &models.Game{
		ID:                uuid.NewString(),
		TournamentID:      tournament.ID,
		DivisionID:        division.ID,
		PoolID:            division.PlayoffPoolID,
		ForfeitStatus:     models.ForfeitNone,
		Status:            models.GameStatusScheduled,
		IsPlayoff:         true,
		PlayoffRound:      &round,
		PlayoffGameNumber: &gameNumber,
		Team1Source:       &home,
		Team2Source:       &away,
		ScheduledAt:       &scheduledAt,
		DiamondID:         rs.diamondID,
	}
}

func tournamentLocation(t *models.Tournament) *time.Location {
	if t.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// dateWithinRange сравнивает на уровне календарных дат в поясе турнира.
func dateWithinRange(at, start, end time.Time, loc *time.Location) bool {
	day := func(t time.Time) time.Time {
		y, m, d := t.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	d := day(at)
	return !d.Before(day(start)) && !d.After(day(end))
}
