package models

import "time"

// PlayoffFormat перечисляет поддерживаемые форматы плей-офф.
type PlayoffFormat string

const (
	FormatTop6          PlayoffFormat = "top_6"
	FormatTop8          PlayoffFormat = "top_8"
	FormatTop8FourPools PlayoffFormat = "top_8_four_pools"
)

// TeamCount возвращает количество команд, которое формат забирает в плей-офф.
// 0 означает неизвестный формат.
func (f PlayoffFormat) TeamCount() int {
	switch f {
	case FormatTop6:
		return 6
	case FormatTop8, FormatTop8FourPools:
		return 8
	default:
		return 0
	}
}

type SeedingPattern string

const (
	SeedingStandard  SeedingPattern = "standard"
	SeedingCrossPool SeedingPattern = "cross_pool"
)

type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

type Tournament struct {
	ID             string           `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	OrganizationID string           `json:"organization_id" db:"organization_id"`
	StartDate      time.Time        `json:"start_date" db:"start_date"`
	EndDate        time.Time        `json:"end_date" db:"end_date"`
	Timezone       string           `json:"timezone" db:"timezone"`
	PlayoffFormat  PlayoffFormat    `json:"playoff_format" db:"playoff_format"`
	SeedingPattern SeedingPattern   `json:"seeding_pattern" db:"seeding_pattern"`
	PoolCount      int              `json:"pool_count" db:"pool_count"`
	Status         TournamentStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}
