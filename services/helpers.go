package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2capper/ballpark/models"
	"github.com/2capper/ballpark/repositories"
)

// runInTx выполняет fn в транзакции: откат при ошибке или панике, иначе
// коммит. Паттерн общий для сохранения расписания, генерации сетки и
// каскада победителей.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("transaction rollback failed", slog.Any("error", rbErr), slog.Any("cause", err))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	err = fn(tx)
	return err
}

// checkOrganization сверяет организацию из токена с организацией турнира:
// роль даёт право писать, но только в турниры своей организации.
func checkOrganization(tournament *models.Tournament, callerOrgID string) error {
	if tournament.OrganizationID != callerOrgID {
		return fmt.Errorf("%w: tournament %s", ErrOrganizationMismatch, tournament.ID)
	}
	return nil
}

// loadScope загружает турнир и дивизион и проверяет их связку: дивизион
// чужого турнира неотличим от несуществующего.
func loadScope(
	ctx context.Context,
	tournaments repositories.TournamentRepository,
	divisions repositories.DivisionRepository,
	tournamentID, divisionID string,
) (*models.Tournament, *models.Division, error) {
	tournament, err := tournaments.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, ErrTournamentNotFound
		}
		return nil, nil, err
	}

	division, err := divisions.GetByID(ctx, nil, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, nil, ErrDivisionNotFound
		}
		return nil, nil, err
	}
	if division.TournamentID != tournament.ID {
		return nil, nil, ErrDivisionNotFound
	}
	return tournament, division, nil
}
