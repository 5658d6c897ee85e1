package models

import "time"

type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusCompleted GameStatus = "completed"
)

type ForfeitStatus string

const (
	ForfeitNone ForfeitStatus = "none"
	ForfeitHome ForfeitStatus = "home"
	ForfeitAway ForfeitStatus = "away"
)

// Game — одна игра, групповая или плей-офф.
// Для плей-офф игр Team1Source/Team2Source фиксируют происхождение сторон
// (посев или победитель другой игры) и не меняются после создания строки;
// HomeTeamID/AwayTeamID — производные от них и заполняются генератором
// сетки либо каскадом победителей.
type Game struct {
	ID           string  `json:"id" db:"id"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	DivisionID   string  `json:"division_id" db:"division_id"`
	PoolID       *string `json:"pool_id,omitempty" db:"pool_id"`

	HomeTeamID *string `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID *string `json:"away_team_id,omitempty" db:"away_team_id"`

	HomeScore         *int     `json:"home_score,omitempty" db:"home_score"`
	AwayScore         *int     `json:"away_score,omitempty" db:"away_score"`
	HomeInningsBatted *float64 `json:"home_innings_batted,omitempty" db:"home_innings_batted"`
	AwayInningsBatted *float64 `json:"away_innings_batted,omitempty" db:"away_innings_batted"`

	ForfeitStatus ForfeitStatus `json:"forfeit_status" db:"forfeit_status"`
	Status        GameStatus    `json:"status" db:"status"`

	IsPlayoff         bool        `json:"is_playoff" db:"is_playoff"`
	PlayoffRound      *int        `json:"playoff_round,omitempty" db:"playoff_round"`
	PlayoffGameNumber *int        `json:"playoff_game_number,omitempty" db:"playoff_game_number"`
	Team1Source       *SlotSource `json:"team1_source,omitempty" db:"team1_source"`
	Team2Source       *SlotSource `json:"team2_source,omitempty" db:"team2_source"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	DiamondID   *string    `json:"diamond_id,omitempty" db:"diamond_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsForfeit сообщает, проиграла ли команда teamID эту игру форфейтом.
func (g *Game) IsForfeit(teamID string) bool {
	switch g.ForfeitStatus {
	case ForfeitHome:
		return g.HomeTeamID != nil && *g.HomeTeamID == teamID
	case ForfeitAway:
		return g.AwayTeamID != nil && *g.AwayTeamID == teamID
	}
	return false
}
