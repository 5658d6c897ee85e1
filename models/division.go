package models

// Division — возрастная группа турнира (11U, 13U и т.д.).
// PlayoffPoolID указывает на зарезервированный пул, в котором живут
// строки игр плей-офф; он задаётся явно, а не распознаётся по имени пула.
type Division struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	TournamentID  string  `json:"tournament_id" db:"tournament_id"`
	PlayoffPoolID *string `json:"playoff_pool_id,omitempty" db:"playoff_pool_id"`
}

type Pool struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	DivisionID string `json:"division_id" db:"division_id"`
}
