package models

type Team struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	City         *string `json:"city,omitempty" db:"city"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	DivisionID   string  `json:"division_id" db:"division_id"`
	PoolID       *string `json:"pool_id,omitempty" db:"pool_id"`
	RosterURL    *string `json:"roster_url,omitempty" db:"roster_url"`
}
