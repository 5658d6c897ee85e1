package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type SlotSourceType string

const (
	SlotSourceSeed   SlotSourceType = "seed"
	SlotSourceWinner SlotSourceType = "winner"
)

// SlotSource описывает происхождение одной стороны слота сетки:
// либо фиксированный номер посева, либо победитель более ранней игры.
// Хранится в jsonb-колонке, поэтому реализует driver.Valuer и sql.Scanner.
type SlotSource struct {
	Type       SlotSourceType `json:"type"`
	Seed       int            `json:"seed,omitempty"`
	Round      int            `json:"round,omitempty"`
	GameNumber int            `json:"game_number,omitempty"`
}

func SeedSource(seed int) *SlotSource {
	return &SlotSource{Type: SlotSourceSeed, Seed: seed}
}

func WinnerSource(round, gameNumber int) *SlotSource {
	return &SlotSource{Type: SlotSourceWinner, Round: round, GameNumber: gameNumber}
}

// ReferencesGame сообщает, ссылается ли источник на победителя игры
// (round, gameNumber).
func (s *SlotSource) ReferencesGame(round, gameNumber int) bool {
	return s != nil && s.Type == SlotSourceWinner && s.Round == round && s.GameNumber == gameNumber
}

// Value обрабатывает и nil-указатель: NULL в колонке означает
// «источник не задан» (обычная игра группового этапа).
func (s *SlotSource) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *SlotSource) Scan(src interface{}) error {
	if src == nil {
		return errors.New("cannot scan nil into SlotSource")
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SlotSource", src)
	}
	return json.Unmarshal(data, s)
}

// BracketSlot — позиция в шаблоне сетки. Шаблон пересчитывается из формата
// при каждом обращении и никогда не сохраняется.
type BracketSlot struct {
	Round      int        `json:"round"`
	GameNumber int        `json:"game_number"`
	Name       string     `json:"name"`
	HomeSource SlotSource `json:"home_source"`
	AwaySource SlotSource `json:"away_source"`
}

// SeededTeam — команда, получившая номер посева по итогам группового этапа.
type SeededTeam struct {
	Seed     int     `json:"seed"`
	TeamID   string  `json:"team_id"`
	PoolName *string `json:"pool_name,omitempty"`
	PoolRank *int    `json:"pool_rank,omitempty"`
}
