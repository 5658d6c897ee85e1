package services

import (
	"errors"
	"testing"
	"time"

	"github.com/2capper/ballpark/models"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func playoffGame(id string, round, gameNumber int, team1, team2 *models.SlotSource) *models.Game {
	return &models.Game{
		ID:                id,
		DivisionID:        "div1",
		ForfeitStatus:     models.ForfeitNone,
		Status:            models.GameStatusScheduled,
		IsPlayoff:         true,
		PlayoffRound:      &round,
		PlayoffGameNumber: &gameNumber,
		Team1Source:       team1,
		Team2Source:       team2,
	}
}

func TestBuildSlotPlan(t *testing.T) {
	existing := []*models.Game{
		playoffGame("g11", 1, 1, models.SeedSource(3), models.SeedSource(6)),
		playoffGame("g21", 2, 1, models.SeedSource(1), models.WinnerSource(1, 2)),
	}
	when := time.Date(2026, 7, 11, 9, 0, 0, 0, time.UTC)
	resolved := map[string]resolvedSlot{
		"R1G1": {slot: models.BracketSlot{Round: 1, GameNumber: 1}, scheduledAt: when},
		"R1G2": {slot: models.BracketSlot{Round: 1, GameNumber: 2}, scheduledAt: when},
	}

	plan := buildSlotPlan(existing, resolved)

	if len(plan.update) != 1 || plan.update[0].gameID != "g11" {
		t.Errorf("plan.update = %+v, want single update of g11", plan.update)
	}
	if len(plan.create) != 1 || plan.create[0].slot.GameNumber != 2 {
		t.Errorf("plan.create = %+v, want single create of R1G2", plan.create)
	}
	if len(plan.remove) != 1 || plan.remove[0] != "g21" {
		t.Errorf("plan.remove = %v, want [g21]", plan.remove)
	}
}

// Пустая карта слотов — валидный вход: расписание плей-офф чистится целиком.
func TestBuildSlotPlanEmptyInputRemovesAll(t *testing.T) {
	existing := []*models.Game{
		playoffGame("g11", 1, 1, models.SeedSource(3), models.SeedSource(6)),
		playoffGame("g12", 1, 2, models.SeedSource(4), models.SeedSource(5)),
	}

	plan := buildSlotPlan(existing, map[string]resolvedSlot{})

	if len(plan.create) != 0 || len(plan.update) != 0 {
		t.Errorf("plan = %+v, want removals only", plan)
	}
	if len(plan.remove) != 2 {
		t.Errorf("len(plan.remove) = %d, want 2", len(plan.remove))
	}
}

func TestResolveSlotTeams(t *testing.T) {
	seedMap := map[int]string{1: "t1", 4: "t4"}

	quarter := playoffGame("q", 1, 1, models.SeedSource(1), models.SeedSource(4))
	home, away := resolveSlotTeams(quarter, seedMap)
	if home == nil || *home != "t1" || away == nil || *away != "t4" {
		t.Errorf("quarter teams = %v/%v, want t1/t4", home, away)
	}

	// источник «победитель игры» не трогается генератором — даже если
	// сторона уже заполнена каскадом
	carried := "cascaded"
	semi := playoffGame("s", 2, 1, models.SeedSource(1), models.WinnerSource(1, 1))
	semi.AwayTeamID = &carried
	home, away = resolveSlotTeams(semi, seedMap)
	if home == nil || *home != "t1" {
		t.Errorf("semi home = %v, want t1", home)
	}
	if away == nil || *away != "cascaded" {
		t.Errorf("semi away = %v, want cascaded value kept", away)
	}

	// посев вне карты оставляет сторону как была
	short := playoffGame("x", 1, 2, models.SeedSource(7), models.SeedSource(1))
	home, _ = resolveSlotTeams(short, seedMap)
	if home != nil {
		t.Errorf("unknown seed resolved to %v, want nil", home)
	}
}

func TestCascadeAssignmentsFanOut(t *testing.T) {
	winner := "t3"
	loser := "t6"
	completed := playoffGame("g11", 1, 1, models.SeedSource(3), models.SeedSource(6))
	completed.HomeTeamID = &winner
	completed.AwayTeamID = &loser
	completed.HomeScore = intPtr(5)
	completed.AwayScore = intPtr(2)
	completed.Status = models.GameStatusCompleted

	semi := playoffGame("g22", 2, 2, models.SeedSource(2), models.WinnerSource(1, 1))
	other := playoffGame("g21", 2, 1, models.SeedSource(1), models.WinnerSource(1, 2))
	// на одну игру могут ссылаться обе стороны утешительного слота
	both := playoffGame("gx", 3, 2, models.WinnerSource(1, 1), models.WinnerSource(1, 1))

	assignments := cascadeAssignments(completed, []*models.Game{completed, semi, other, both})

	if len(assignments) != 2 {
		t.Fatalf("len(assignments) = %d, want 2", len(assignments))
	}
	byGame := map[string]teamAssignment{}
	for _, a := range assignments {
		byGame[a.gameID] = a
	}

	semiAssign, ok := byGame["g22"]
	if !ok || semiAssign.away == nil || *semiAssign.away != "t3" {
		t.Errorf("semi assignment = %+v, want away t3", semiAssign)
	}
	if semiAssign.home != nil {
		t.Errorf("semi home = %v, want untouched nil", semiAssign.home)
	}

	bothAssign, ok := byGame["gx"]
	if !ok || bothAssign.home == nil || bothAssign.away == nil || *bothAssign.home != "t3" || *bothAssign.away != "t3" {
		t.Errorf("double-reference assignment = %+v, want t3 on both sides", bothAssign)
	}

	if _, ok := byGame["g21"]; ok {
		t.Error("game referencing R1G2 must not be touched")
	}
}

func TestCascadeAssignmentsTieProducesNone(t *testing.T) {
	home, away := "t3", "t6"
	completed := playoffGame("g11", 1, 1, models.SeedSource(3), models.SeedSource(6))
	completed.HomeTeamID = &home
	completed.AwayTeamID = &away
	completed.HomeScore = intPtr(4)
	completed.AwayScore = intPtr(4)
	completed.Status = models.GameStatusCompleted

	semi := playoffGame("g22", 2, 2, models.SeedSource(2), models.WinnerSource(1, 1))

	if got := cascadeAssignments(completed, []*models.Game{semi}); got != nil {
		t.Errorf("assignments = %+v, want none for a tie", got)
	}
}

func TestApplyGameUpdatePartial(t *testing.T) {
	game := &models.Game{
		HomeScore:     intPtr(1),
		ForfeitStatus: models.ForfeitNone,
		Status:        models.GameStatusScheduled,
	}
	status := models.GameStatusCompleted
	applyGameUpdate(game, GameUpdateInput{
		AwayScore:         intPtr(3),
		AwayInningsBatted: floatPtr(6),
		Status:            &status,
	})

	if *game.HomeScore != 1 {
		t.Errorf("home score = %d, want untouched 1", *game.HomeScore)
	}
	if game.AwayScore == nil || *game.AwayScore != 3 {
		t.Errorf("away score = %v, want 3", game.AwayScore)
	}
	if game.Status != models.GameStatusCompleted {
		t.Errorf("status = %s, want completed", game.Status)
	}
	if game.ForfeitStatus != models.ForfeitNone {
		t.Errorf("forfeit = %s, want none", game.ForfeitStatus)
	}
}

func TestValidateGameUpdate(t *testing.T) {
	if err := validateGameUpdate(GameUpdateInput{HomeScore: intPtr(-1)}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative home score: err = %v, want ErrInvalidScore", err)
	}
	if err := validateGameUpdate(GameUpdateInput{AwayScore: intPtr(-2)}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative away score: err = %v, want ErrInvalidScore", err)
	}
	if err := validateGameUpdate(GameUpdateInput{HomeScore: intPtr(0)}); err != nil {
		t.Errorf("zero score: err = %v, want nil", err)
	}
}

func TestDateWithinRange(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 7, 10, 0, 0, 0, 0, loc)
	end := time.Date(2026, 7, 12, 0, 0, 0, 0, loc)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first day late evening", time.Date(2026, 7, 10, 23, 30, 0, 0, loc), true},
		{"last day", time.Date(2026, 7, 12, 8, 0, 0, 0, loc), true},
		{"day before", time.Date(2026, 7, 9, 12, 0, 0, 0, loc), false},
		{"day after", time.Date(2026, 7, 13, 0, 0, 0, 0, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dateWithinRange(tt.at, start, end, loc); got != tt.want {
				t.Errorf("dateWithinRange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPoolPlayTeamsExcludesPlayoffPool(t *testing.T) {
	playoffPool := "pp"
	division := &models.Division{ID: "div1", PlayoffPoolID: &playoffPool}
	regular := "pa"
	data := &divisionData{
		pools: []*models.Pool{
			{ID: "pa", Name: "Pool A", DivisionID: "div1"},
			{ID: "pp", Name: "Playoffs", DivisionID: "div1"},
		},
		teams: []*models.Team{
			{ID: "t1", Name: "Team 1", PoolID: &regular},
			{ID: "t2", Name: "Team 2", PoolID: &playoffPool},
			{ID: "t3", Name: "Team 3"},
		},
	}

	teams, pools := poolPlayTeams(data, division)
	if len(pools) != 1 || pools[0].ID != "pa" {
		t.Errorf("pools = %+v, want only pa", pools)
	}
	if len(teams) != 1 || teams[0].ID != "t1" {
		t.Errorf("teams = %+v, want only t1", teams)
	}
}

func completedGame(home, away string, homeScore, awayScore int) *models.Game {
	innings := 6.0
	return &models.Game{
		HomeTeamID:        &home,
		AwayTeamID:        &away,
		HomeScore:         intPtr(homeScore),
		AwayScore:         intPtr(awayScore),
		HomeInningsBatted: &innings,
		AwayInningsBatted: &innings,
		ForfeitStatus:     models.ForfeitNone,
		Status:            models.GameStatusCompleted,
	}
}

func TestCheckOrganization(t *testing.T) {
	tournament := &models.Tournament{ID: "t1", OrganizationID: "org1"}

	if err := checkOrganization(tournament, "org1"); err != nil {
		t.Errorf("same organization: err = %v, want nil", err)
	}
	if err := checkOrganization(tournament, "org2"); !errors.Is(err, ErrOrganizationMismatch) {
		t.Errorf("foreign organization: err = %v, want ErrOrganizationMismatch", err)
	}
	if err := checkOrganization(tournament, ""); !errors.Is(err, ErrOrganizationMismatch) {
		t.Errorf("empty caller organization: err = %v, want ErrOrganizationMismatch", err)
	}
}

func TestBuildStandingsViewPoolAnnotations(t *testing.T) {
	poolA, poolB := "pa", "pb"
	division := &models.Division{ID: "div1"}
	pools := []*models.Pool{
		{ID: poolA, Name: "Pool A", DivisionID: "div1"},
		{ID: poolB, Name: "Pool B", DivisionID: "div1"},
	}
	teams := []*models.Team{
		{ID: "a1", Name: "Team a1", PoolID: &poolA},
		{ID: "a2", Name: "Team a2", PoolID: &poolA},
		{ID: "b1", Name: "Team b1", PoolID: &poolB},
		{ID: "b2", Name: "Team b2", PoolID: &poolB},
	}
	games := []*models.Game{
		completedGame("a1", "a2", 7, 2),
		completedGame("b2", "b1", 3, 1),
	}

	view := buildStandingsView(division, teams, pools, games)

	if len(view.Overall) != 4 {
		t.Fatalf("len(view.Overall) = %d, want 4", len(view.Overall))
	}
	// сводная таблица — без пометок пула
	for _, row := range view.Overall {
		if row.PoolName != nil || row.PoolRank != nil {
			t.Errorf("overall row %s carries pool annotation", row.TeamID)
		}
	}

	if len(view.Pools) != 2 || view.Pools[0].PoolName != "Pool A" || view.Pools[1].PoolName != "Pool B" {
		t.Fatalf("view.Pools = %+v, want Pool A then Pool B", view.Pools)
	}
	for _, ps := range view.Pools {
		for _, row := range ps.Standings {
			if row.PoolName == nil || *row.PoolName != ps.PoolName {
				t.Errorf("pool %s row %s: PoolName = %v, want %q", ps.PoolID, row.TeamID, row.PoolName, ps.PoolName)
			}
			if row.PoolRank == nil || *row.PoolRank != row.Rank {
				t.Errorf("pool %s row %s: PoolRank = %v, want %d", ps.PoolID, row.TeamID, row.PoolRank, row.Rank)
			}
		}
	}
	if got := view.Pools[1].Standings[0].TeamID; got != "b2" {
		t.Errorf("Pool B leader = %s, want b2", got)
	}
}

func TestBuildBracketView(t *testing.T) {
	game := playoffGame("g11", 1, 1, models.SeedSource(3), models.SeedSource(6))
	view, err := buildBracketView(models.FormatTop6, []*models.Game{game})
	if err != nil {
		t.Fatalf("buildBracketView: %v", err)
	}
	if len(view.Slots) != 5 {
		t.Fatalf("len(view.Slots) = %d, want 5", len(view.Slots))
	}

	filled := 0
	for _, s := range view.Slots {
		if s.Game != nil {
			filled++
			if s.SlotKey != "R1G1" {
				t.Errorf("filled slot key = %s, want R1G1", s.SlotKey)
			}
		}
	}
	if filled != 1 {
		t.Errorf("filled slots = %d, want 1", filled)
	}

	if _, err := buildBracketView("bogus", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unsupported format err = %v, want ErrUnsupportedFormat", err)
	}
}
