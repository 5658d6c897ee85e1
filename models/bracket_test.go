package models

import (
	"testing"
)

func TestSlotSourceValueNil(t *testing.T) {
	var src *SlotSource
	v, err := src.Value()
	if err != nil {
		t.Fatalf("Value() on nil: %v", err)
	}
	if v != nil {
		t.Errorf("Value() on nil = %v, want NULL", v)
	}
}

func TestSlotSourceScan(t *testing.T) {
	var src SlotSource
	if err := src.Scan([]byte(`{"type":"winner","round":2,"game_number":1}`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if src.Type != SlotSourceWinner || src.Round != 2 || src.GameNumber != 1 {
		t.Errorf("scanned source = %+v, want winner of R2G1", src)
	}

	if err := src.Scan(nil); err == nil {
		t.Error("Scan(nil) succeeded, want error")
	}
	if err := src.Scan(42); err == nil {
		t.Error("Scan(int) succeeded, want error")
	}
}

func TestSlotSourceReferencesGame(t *testing.T) {
	winner := WinnerSource(1, 2)
	if !winner.ReferencesGame(1, 2) {
		t.Error("winner source must reference its game")
	}
	if winner.ReferencesGame(1, 1) {
		t.Error("winner source must not reference other games")
	}
	if SeedSource(3).ReferencesGame(0, 0) {
		t.Error("seed source must not reference any game")
	}

	var nilSource *SlotSource
	if nilSource.ReferencesGame(1, 1) {
		t.Error("nil source must not reference any game")
	}
}

func TestGameIsForfeit(t *testing.T) {
	home, away := "h", "a"
	g := &Game{HomeTeamID: &home, AwayTeamID: &away, ForfeitStatus: ForfeitHome}
	if !g.IsForfeit("h") {
		t.Error("home team must be the forfeiting side")
	}
	if g.IsForfeit("a") {
		t.Error("away team did not forfeit")
	}

	g.ForfeitStatus = ForfeitNone
	if g.IsForfeit("h") || g.IsForfeit("a") {
		t.Error("no side forfeits when status is none")
	}
}
