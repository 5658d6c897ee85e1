package brackets

import (
	"fmt"
	"testing"

	"github.com/2capper/ballpark/models"
)

func pooledTeam(id, name, poolID string) *models.Team {
	return &models.Team{ID: id, Name: name, PoolID: &poolID}
}

func seedGame(home, away string, homeScore, awayScore int) *models.Game {
	innings := 6.0
	return &models.Game{
		HomeTeamID:        &home,
		AwayTeamID:        &away,
		HomeScore:         &homeScore,
		AwayScore:         &awayScore,
		HomeInningsBatted: &innings,
		AwayInningsBatted: &innings,
		ForfeitStatus:     models.ForfeitNone,
		Status:            models.GameStatusCompleted,
	}
}

func seedOrder(seeds []models.SeededTeam) []string {
	ids := make([]string, len(seeds))
	for i, s := range seeds {
		ids[i] = s.TeamID
	}
	return ids
}

func TestStandardSeedsFollowOverallTable(t *testing.T) {
	teams := []*models.Team{
		{ID: "a", Name: "Aces"},
		{ID: "b", Name: "Bears"},
		{ID: "c", Name: "Cubs"},
	}
	games := []*models.Game{
		seedGame("a", "b", 1, 5),
		seedGame("b", "c", 6, 0),
		seedGame("a", "c", 4, 2),
	}

	seeds := ExtractSeeds(ExtractSeedsParams{
		Teams:   teams,
		Games:   games,
		Format:  models.FormatTop6,
		Pattern: models.SeedingStandard,
	})

	// команд меньше, чем требует формат: получаем столько, сколько есть
	want := []string{"b", "a", "c"}
	got := seedOrder(seeds)
	if len(got) != len(want) {
		t.Fatalf("seeds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("seeds = %v, want %v", got, want)
		}
		if seeds[i].Seed != i+1 {
			t.Errorf("seed number = %d, want %d", seeds[i].Seed, i+1)
		}
		if seeds[i].PoolName != nil {
			t.Errorf("standard seed %d carries pool name %q", i+1, *seeds[i].PoolName)
		}
	}
}

// Четыре пула по две команды: посевы идут A1,A2,B1,B2,C1,C2,D1,D2
// независимо от общего рейтинга.
func TestCrossPoolSeedsOrderedByPoolName(t *testing.T) {
	pools := []*models.Pool{
		{ID: "pd", Name: "Pool D"},
		{ID: "pb", Name: "Pool B"},
		{ID: "pa", Name: "Pool A"},
		{ID: "pc", Name: "Pool C"},
	}

	var teams []*models.Team
	var games []*models.Game
	for _, p := range []string{"pa", "pb", "pc", "pd"} {
		first := p + "1"
		second := p + "2"
		teams = append(teams,
			pooledTeam(first, "Team "+first, p),
			pooledTeam(second, "Team "+second, p),
		)
		games = append(games, seedGame(second, first, 2, 9))
	}

	seeds := ExtractSeeds(ExtractSeedsParams{
		Teams:   teams,
		Pools:   pools,
		Games:   games,
		Format:  models.FormatTop8FourPools,
		Pattern: models.SeedingStandard, // формат всё равно сеет по пулам
	})

	want := []string{"pa1", "pa2", "pb1", "pb2", "pc1", "pc2", "pd1", "pd2"}
	got := seedOrder(seeds)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("seeds = %v, want %v", got, want)
	}

	for i, s := range seeds {
		if s.PoolName == nil || s.PoolRank == nil {
			t.Fatalf("seed %d is missing pool annotation", s.Seed)
		}
		wantRank := i%2 + 1
		if *s.PoolRank != wantRank {
			t.Errorf("seed %d pool rank = %d, want %d", s.Seed, *s.PoolRank, wantRank)
		}
	}
}

// Игры между пулами не должны влиять на рейтинг внутри пула.
func TestCrossPoolSeedsIgnoreInterPoolGames(t *testing.T) {
	pools := []*models.Pool{
		{ID: "pa", Name: "Pool A"},
		{ID: "pb", Name: "Pool B"},
	}
	teams := []*models.Team{
		pooledTeam("a1", "Team a1", "pa"),
		pooledTeam("a2", "Team a2", "pa"),
		pooledTeam("b1", "Team b1", "pb"),
		pooledTeam("b2", "Team b2", "pb"),
	}
	games := []*models.Game{
		seedGame("a1", "a2", 5, 0),
		seedGame("b1", "b2", 5, 0),
		// a2 громит чужой пул — внутри своего это ничего не меняет
		seedGame("a2", "b1", 20, 0),
		seedGame("a2", "b2", 20, 0),
	}

	seeds := ExtractSeeds(ExtractSeedsParams{
		Teams:   teams,
		Pools:   pools,
		Games:   games,
		Format:  models.FormatTop8, // TeamCount 8, по 4 с пула — берём всех
		Pattern: models.SeedingCrossPool,
	})

	got := seedOrder(seeds)
	want := []string{"a1", "a2", "b1", "b2"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("seeds = %v, want %v", got, want)
	}
}

// Квота на пул идёт от заявленного числа пулов: если у турнира заявлено
// четыре пула, а команды есть только в двух, из каждого берётся по две,
// и посев выходит коротким — а не по четыре из выживших.
func TestCrossPoolSeedsHonorDeclaredPoolCount(t *testing.T) {
	pools := []*models.Pool{
		{ID: "pa", Name: "Pool A"},
		{ID: "pb", Name: "Pool B"},
	}
	var teams []*models.Team
	var games []*models.Game
	for _, p := range []string{"pa", "pb"} {
		ids := []string{p + "1", p + "2", p + "3"}
		for _, id := range ids {
			teams = append(teams, pooledTeam(id, "Team "+id, p))
		}
		games = append(games,
			seedGame(ids[0], ids[1], 5, 1),
			seedGame(ids[0], ids[2], 5, 1),
			seedGame(ids[1], ids[2], 5, 1),
		)
	}

	seeds := ExtractSeeds(ExtractSeedsParams{
		Teams:     teams,
		Pools:     pools,
		Games:     games,
		Format:    models.FormatTop8,
		Pattern:   models.SeedingCrossPool,
		PoolCount: 4,
	})

	got := seedOrder(seeds)
	want := []string{"pa1", "pa2", "pb1", "pb2"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("seeds = %v, want %v", got, want)
	}
}
