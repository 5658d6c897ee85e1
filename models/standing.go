package models

// Standing — производная строка таблицы группового этапа. Никогда не
// сохраняется в БД: пересчитывается из завершённых игр при каждом запросе.
type Standing struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`

	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Ties          int `json:"ties"`
	ForfeitLosses int `json:"forfeit_losses"`

	RunsFor          int     `json:"runs_for"`
	RunsAgainst      int     `json:"runs_against"`
	OffensiveInnings float64 `json:"offensive_innings"`
	DefensiveInnings float64 `json:"defensive_innings"`

	Points               int     `json:"points"`
	RunsForPerInning     float64 `json:"runs_for_per_inning"`
	RunsAgainstPerInning float64 `json:"runs_against_per_inning"`

	Rank     int     `json:"rank"`
	PoolName *string `json:"pool_name,omitempty"`
	PoolRank *int    `json:"pool_rank,omitempty"`
}

// GamesPlayed — количество завершённых игр команды.
func (s *Standing) GamesPlayed() int {
	return s.Wins + s.Losses + s.Ties
}
