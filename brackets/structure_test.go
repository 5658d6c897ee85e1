package brackets

import (
	"testing"

	"github.com/2capper/ballpark/models"
)

func TestSlotsForFormat(t *testing.T) {
	tests := []struct {
		format      models.PlayoffFormat
		slots       int
		rounds      int
		maxSeed     int
		firstRound  int
	}{
		{models.FormatTop6, 5, 3, 6, 2},
		{models.FormatTop8, 7, 3, 8, 4},
		{models.FormatTop8FourPools, 7, 3, 8, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			slots := SlotsForFormat(tt.format)
			if len(slots) != tt.slots {
				t.Fatalf("len(slots) = %d, want %d", len(slots), tt.slots)
			}
			if got := TotalRounds(slots); got != tt.rounds {
				t.Errorf("TotalRounds = %d, want %d", got, tt.rounds)
			}
			if got := MaxSeed(slots); got != tt.maxSeed {
				t.Errorf("MaxSeed = %d, want %d", got, tt.maxSeed)
			}
			firstRound := 0
			for _, s := range slots {
				if s.Round == 1 {
					firstRound++
				}
				if s.Name == "" {
					t.Errorf("slot R%dG%d has empty name", s.Round, s.GameNumber)
				}
			}
			if firstRound != tt.firstRound {
				t.Errorf("first round games = %d, want %d", firstRound, tt.firstRound)
			}
		})
	}
}

func TestSlotsForFormatUnsupported(t *testing.T) {
	if slots := SlotsForFormat("single_elim_16"); slots != nil {
		t.Fatalf("SlotsForFormat(unsupported) = %v, want nil", slots)
	}
}

// Посевы 1 и 2 в top_6 пропускают первый раунд и ждут победителей
// перекрёстно: 1 играет с победителем второй игры, 2 — первой.
func TestTop6ByesAreCrossed(t *testing.T) {
	slots := SlotsForFormat(models.FormatTop6)

	semi1, ok := FindSlot(slots, 2, 1)
	if !ok {
		t.Fatal("R2G1 not found in top_6 template")
	}
	if semi1.HomeSource.Seed != 1 || !semi1.AwaySource.ReferencesGame(1, 2) {
		t.Errorf("R2G1 sources = %+v / %+v, want seed 1 vs winner of R1G2", semi1.HomeSource, semi1.AwaySource)
	}

	semi2, ok := FindSlot(slots, 2, 2)
	if !ok {
		t.Fatal("R2G2 not found in top_6 template")
	}
	if semi2.HomeSource.Seed != 2 || !semi2.AwaySource.ReferencesGame(1, 1) {
		t.Errorf("R2G2 sources = %+v / %+v, want seed 2 vs winner of R1G1", semi2.HomeSource, semi2.AwaySource)
	}
}

// При посеве A1,A2,B1,B2,C1,C2,D1,D2 команды одного пула не должны
// встретиться раньше финала.
func TestTop8FourPoolsSeparatesPools(t *testing.T) {
	slots := SlotsForFormat(models.FormatTop8FourPools)

	// посев → пул: 1,2→A; 3,4→B; 5,6→C; 7,8→D
	poolOf := func(seed int) int { return (seed - 1) / 2 }

	quarterPool := map[string][2]int{}
	for _, s := range slots {
		if s.Round != 1 {
			continue
		}
		home, away := s.HomeSource.Seed, s.AwaySource.Seed
		if poolOf(home) == poolOf(away) {
			t.Errorf("R1G%d pairs seeds %d and %d from the same pool", s.GameNumber, home, away)
		}
		quarterPool[SlotKey(s.Round, s.GameNumber)] = [2]int{poolOf(home), poolOf(away)}
	}

	for _, s := range slots {
		if s.Round != 2 {
			continue
		}
		homePools := quarterPool[SlotKey(s.HomeSource.Round, s.HomeSource.GameNumber)]
		awayPools := quarterPool[SlotKey(s.AwaySource.Round, s.AwaySource.GameNumber)]
		for _, hp := range homePools {
			for _, ap := range awayPools {
				if hp == ap {
					t.Errorf("R2G%d can rematch pool %d before the final", s.GameNumber, hp)
				}
			}
		}
	}
}

func TestSlotKeyRoundTrip(t *testing.T) {
	round, gameNumber, err := ParseSlotKey(SlotKey(2, 1))
	if err != nil {
		t.Fatalf("ParseSlotKey: %v", err)
	}
	if round != 2 || gameNumber != 1 {
		t.Errorf("ParseSlotKey = (%d, %d), want (2, 1)", round, gameNumber)
	}
}

func TestParseSlotKeyMalformed(t *testing.T) {
	for _, key := range []string{"", "R1", "G1R1", "R0G1", "R1G0", "RxGy", "R1G1x", "R1G1 junk", "R01G1", "R1G01"} {
		if _, _, err := ParseSlotKey(key); err == nil {
			t.Errorf("ParseSlotKey(%q) succeeded, want error", key)
		}
	}
}

func TestRoundName(t *testing.T) {
	tests := []struct {
		round, total int
		want         string
	}{
		{3, 3, "Finals"},
		{2, 3, "Semifinals"},
		{1, 3, "Quarterfinals"},
		{1, 4, "Round 1"},
	}
	for _, tt := range tests {
		if got := RoundName(tt.round, tt.total); got != tt.want {
			t.Errorf("RoundName(%d, %d) = %q, want %q", tt.round, tt.total, got, tt.want)
		}
	}
}
