package standings

import (
	"testing"

	"github.com/2capper/ballpark/models"
)

func team(id, name string) *models.Team {
	return &models.Team{ID: id, Name: name}
}

func completedGame(home, away string, homeScore, awayScore int, homeInnings, awayInnings float64) *models.Game {
	return &models.Game{
		HomeTeamID:        &home,
		AwayTeamID:        &away,
		HomeScore:         &homeScore,
		AwayScore:         &awayScore,
		HomeInningsBatted: &homeInnings,
		AwayInningsBatted: &awayInnings,
		ForfeitStatus:     models.ForfeitNone,
		Status:            models.GameStatusCompleted,
	}
}

func forfeitGame(home, away string, homeScore, awayScore int, forfeit models.ForfeitStatus) *models.Game {
	g := completedGame(home, away, homeScore, awayScore, 6, 6)
	g.ForfeitStatus = forfeit
	return g
}

func rankOrder(table []*models.Standing) []string {
	ids := make([]string, len(table))
	for i, s := range table {
		ids[i] = s.TeamID
	}
	return ids
}

func assertOrder(t *testing.T, table []*models.Standing, want []string) {
	t.Helper()
	got := rankOrder(table)
	if len(got) != len(want) {
		t.Fatalf("standings length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("standings order = %v, want %v", got, want)
		}
	}
	for i, s := range table {
		if s.Rank != i+1 {
			t.Errorf("team %s rank = %d, want %d", s.TeamID, s.Rank, i+1)
		}
	}
}

func TestCalculateRecordAndPoints(t *testing.T) {
	teams := []*models.Team{team("a", "Aces"), team("b", "Bears"), team("c", "Cubs")}
	games := []*models.Game{
		completedGame("a", "b", 5, 3, 6, 6),
		completedGame("b", "c", 4, 4, 7, 7),
		completedGame("c", "a", 1, 8, 5, 6),
	}

	table := Calculate(teams, games)
	assertOrder(t, table, []string{"a", "b", "c"})

	byID := make(map[string]*models.Standing)
	for _, s := range table {
		byID[s.TeamID] = s
	}

	a := byID["a"]
	if a.Wins != 2 || a.Losses != 0 || a.Ties != 0 {
		t.Errorf("a record = %d-%d-%d, want 2-0-0", a.Wins, a.Losses, a.Ties)
	}
	if a.Points != 4 {
		t.Errorf("a points = %d, want 4", a.Points)
	}
	if a.RunsFor != 13 || a.RunsAgainst != 4 {
		t.Errorf("a runs = %d/%d, want 13/4", a.RunsFor, a.RunsAgainst)
	}
	if a.GamesPlayed() != 2 {
		t.Errorf("a games played = %d, want 2", a.GamesPlayed())
	}

	b := byID["b"]
	if b.Wins != 0 || b.Losses != 1 || b.Ties != 1 {
		t.Errorf("b record = %d-%d-%d, want 0-1-1", b.Wins, b.Losses, b.Ties)
	}
	if b.Points != 1 {
		t.Errorf("b points = %d, want 1", b.Points)
	}
}

func TestCalculatePerInningRates(t *testing.T) {
	teams := []*models.Team{team("a", "Aces"), team("b", "Bears")}
	games := []*models.Game{completedGame("a", "b", 6, 3, 6, 6)}

	table := Calculate(teams, games)
	a := table[0]
	if a.TeamID != "a" {
		t.Fatalf("first ranked = %s, want a", a.TeamID)
	}
	if a.RunsForPerInning != 1.0 {
		t.Errorf("a runs for per inning = %v, want 1.0", a.RunsForPerInning)
	}
	if a.RunsAgainstPerInning != 0.5 {
		t.Errorf("a runs against per inning = %v, want 0.5", a.RunsAgainstPerInning)
	}
}

func TestCalculateNoGamesZeroRates(t *testing.T) {
	teams := []*models.Team{team("b", "Bears"), team("a", "Aces")}

	table := Calculate(teams, nil)
	// без игр всё решает алфавит
	assertOrder(t, table, []string{"a", "b"})
	for _, s := range table {
		if s.RunsForPerInning != 0 || s.RunsAgainstPerInning != 0 {
			t.Errorf("team %s rates = %v/%v, want 0/0", s.TeamID, s.RunsForPerInning, s.RunsAgainstPerInning)
		}
	}
}

func TestCalculateIgnoresUnfinishedAndForeignGames(t *testing.T) {
	teams := []*models.Team{team("a", "Aces"), team("b", "Bears")}
	scheduled := completedGame("a", "b", 9, 0, 6, 6)
	scheduled.Status = models.GameStatusScheduled
	games := []*models.Game{
		scheduled,
		completedGame("a", "x", 0, 10, 6, 6), // x вне набора команд
		completedGame("b", "a", 2, 1, 6, 6),
	}

	table := Calculate(teams, games)
	assertOrder(t, table, []string{"b", "a"})
	if table[0].GamesPlayed() != 1 || table[1].GamesPlayed() != 1 {
		t.Errorf("games played = %d/%d, want 1/1", table[0].GamesPlayed(), table[1].GamesPlayed())
	}
}

func TestCalculateForfeitOverridesScore(t *testing.T) {
	teams := []*models.Team{team("a", "Aces"), team("b", "Bears")}
	// хозяева впереди по счёту, но снялись — поражение форфейтом
	games := []*models.Game{forfeitGame("a", "b", 7, 2, models.ForfeitHome)}

	table := Calculate(teams, games)
	assertOrder(t, table, []string{"b", "a"})

	a := table[1]
	if a.Wins != 0 || a.Losses != 1 || a.ForfeitLosses != 1 {
		t.Errorf("a record = %d-%d forfeits=%d, want 0-1 forfeits=1", a.Wins, a.Losses, a.ForfeitLosses)
	}
	// раны и иннинги остаются как в протоколе
	if a.RunsFor != 7 || a.RunsAgainst != 2 {
		t.Errorf("a runs = %d/%d, want 7/2", a.RunsFor, a.RunsAgainst)
	}
}

func TestTieBreakHeadToHeadPair(t *testing.T) {
	teams := []*models.Team{
		team("a", "Aces"), team("b", "Bears"), team("c", "Cubs"), team("d", "Dukes"),
	}
	// a и b по 2 очка; у b показатели пропущенных ранов заметно лучше,
	// но личная встреча за a
	games := []*models.Game{
		completedGame("a", "b", 10, 9, 6, 6),
		completedGame("c", "a", 10, 0, 6, 6),
		completedGame("b", "c", 10, 0, 6, 6),
		completedGame("c", "d", 5, 1, 6, 6),
	}

	table := Calculate(teams, games)
	assertOrder(t, table, []string{"c", "a", "b", "d"})
}

func TestTieBreakForfeitSplitsThenRestarts(t *testing.T) {
	teams := []*models.Team{team("a", "Aces"), team("b", "Bears"), team("c", "Cubs")}
	// все 1-1 и по 2 очка; у c форфейт — уходит вниз, оставшаяся пара
	// решается личной встречей (a выиграла у b)
	games := []*models.Game{
		completedGame("a", "b", 3, 2, 6, 6),
		forfeitGame("b", "c", 0, 7, models.ForfeitAway),
		completedGame("c", "a", 6, 5, 6, 6),
	}

	table := Calculate(teams, games)
	assertOrder(t, table, []string{"a", "b", "c"})
}

func TestTieBreakRunsAgainstAmongTied(t *testing.T) {
	teams := []*models.Team{team("a", "Aces"), team("b", "Bears"), team("c", "Cubs")}
	// круговая тройка без форфейтов: решают пропущенные раны за иннинг в
	// играх внутри группы
	games := []*models.Game{
		completedGame("a", "b", 10, 0, 6, 6),
		completedGame("b", "c", 2, 1, 6, 6),
		completedGame("c", "a", 6, 5, 6, 6),
	}
	// пропущено за 12 иннингов: a: 0+6=6, b: 10+1=11, c: 2+5=7

	table := Calculate(teams, games)
	assertOrder(t, table, []string{"a", "c", "b"})
}

func TestWinnerTeamID(t *testing.T) {
	tests := []struct {
		name string
		game *models.Game
		want string
	}{
		{"home wins by score", completedGame("h", "a", 4, 2, 6, 6), "h"},
		{"away wins by score", completedGame("h", "a", 1, 2, 6, 6), "a"},
		{"tie has no winner", completedGame("h", "a", 3, 3, 6, 6), ""},
		{"home forfeit overrides score", forfeitGame("h", "a", 9, 0, models.ForfeitHome), "a"},
		{"away forfeit overrides score", forfeitGame("h", "a", 0, 9, models.ForfeitAway), "h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WinnerTeamID(tt.game); got != tt.want {
				t.Errorf("WinnerTeamID() = %q, want %q", got, tt.want)
			}
		})
	}
}
