// Package brackets содержит чистые вычисления сетки плей-офф: фиксированные
// шаблоны слотов по формату и извлечение посева из таблиц группового этапа.
// Ничего из этого пакета не обращается к БД.
package brackets

import (
	"fmt"

	"github.com/2capper/ballpark/models"
)

// SlotsForFormat возвращает шаблон слотов для формата: раунд, номер игры и
// источник каждой стороны. Неподдерживаемый формат даёт пустой список —
// это ошибка валидации на уровне вызывающего, а не «данных пока нет».
//
// Шаблон пересчитывается при каждом вызове и никогда не сохраняется.
func SlotsForFormat(format models.PlayoffFormat) []models.BracketSlot {
	var slots []models.BracketSlot
	switch format {
	case models.FormatTop6:
		slots = top6Slots()
	case models.FormatTop8:
		slots = top8Slots()
	case models.FormatTop8FourPools:
		slots = top8FourPoolsSlots()
	default:
		return nil
	}

	total := TotalRounds(slots)
	for i := range slots {
		slots[i].Name = fmt.Sprintf("%s - Game %d", RoundName(slots[i].Round, total), slots[i].GameNumber)
	}
	return slots
}

// top6Slots: посевы 1 и 2 отдыхают в первом раунде.
func top6Slots() []models.BracketSlot {
	return []models.BracketSlot{
		slot(1, 1, seed(3), seed(6)),
		slot(1, 2, seed(4), seed(5)),
		slot(2, 1, seed(1), winner(1, 2)),
		slot(2, 2, seed(2), winner(1, 1)),
		slot(3, 1, winner(2, 1), winner(2, 2)),
	}
}

func top8Slots() []models.BracketSlot {
	return []models.BracketSlot{
		slot(1, 1, seed(1), seed(8)),
		slot(1, 2, seed(4), seed(5)),
		slot(1, 3, seed(2), seed(7)),
		slot(1, 4, seed(3), seed(6)),
		slot(2, 1, winner(1, 1), winner(1, 2)),
		slot(2, 2, winner(1, 3), winner(1, 4)),
		slot(3, 1, winner(2, 1), winner(2, 2)),
	}
}

// top8FourPoolsSlots рассчитан на посев A1,A2,B1,B2,C1,C2,D1,D2
// (по два из каждого пула): четвертьфиналы сводят первых со вторыми из
// чужого пула, и команды одного пула не встречаются раньше финала.
func top8FourPoolsSlots() []models.BracketSlot {
	return []models.BracketSlot{
		slot(1, 1, seed(1), seed(6)),
		slot(1, 2, seed(2), seed(5)),
		slot(1, 3, seed(3), seed(8)),
		slot(1, 4, seed(4), seed(7)),
		slot(2, 1, winner(1, 1), winner(1, 3)),
		slot(2, 2, winner(1, 2), winner(1, 4)),
		slot(3, 1, winner(2, 1), winner(2, 2)),
	}
}

func slot(round, gameNumber int, home, away models.SlotSource) models.BracketSlot {
	return models.BracketSlot{
		Round:      round,
		GameNumber: gameNumber,
		HomeSource: home,
		AwaySource: away,
	}
}

func seed(n int) models.SlotSource {
	return *models.SeedSource(n)
}

func winner(round, gameNumber int) models.SlotSource {
	return *models.WinnerSource(round, gameNumber)
}

// MaxSeed возвращает наибольший номер посева, на который ссылается шаблон.
// Генератор сетки сверяет с ним количество реально извлечённых посевов.
func MaxSeed(slots []models.BracketSlot) int {
	max := 0
	for _, s := range slots {
		for _, src := range []models.SlotSource{s.HomeSource, s.AwaySource} {
			if src.Type == models.SlotSourceSeed && src.Seed > max {
				max = src.Seed
			}
		}
	}
	return max
}

// RoundName — чисто отображаемое имя раунда; нигде не сохраняется.
func RoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Finals"
	case 1:
		return "Semifinals"
	case 2:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

// TotalRounds возвращает число раундов в шаблоне.
func TotalRounds(slots []models.BracketSlot) int {
	total := 0
	for _, s := range slots {
		if s.Round > total {
			total = s.Round
		}
	}
	return total
}

// SlotKey — строковый ключ слота вида "R1G2", которым клиенты адресуют
// слоты при сохранении расписания.
func SlotKey(round, gameNumber int) string {
	return fmt.Sprintf("R%dG%d", round, gameNumber)
}

// ParseSlotKey разбирает ключ, выданный SlotKey. Принимается только
// каноническая форма: Sscanf молча глотает хвост и ведущие нули, поэтому
// разобранные числа собираются обратно и сверяются с исходной строкой —
// иначе "R1G1x" и "R01G1" проходили бы как псевдонимы R1G1.
func ParseSlotKey(key string) (round, gameNumber int, err error) {
	if _, err = fmt.Sscanf(key, "R%dG%d", &round, &gameNumber); err != nil {
		return 0, 0, fmt.Errorf("malformed slot key %q", key)
	}
	if round < 1 || gameNumber < 1 || SlotKey(round, gameNumber) != key {
		return 0, 0, fmt.Errorf("malformed slot key %q", key)
	}
	return round, gameNumber, nil
}

// FindSlot возвращает слот шаблона с данными раундом и номером игры.
func FindSlot(slots []models.BracketSlot, round, gameNumber int) (models.BracketSlot, bool) {
	for _, s := range slots {
		if s.Round == round && s.GameNumber == gameNumber {
			return s, true
		}
	}
	return models.BracketSlot{}, false
}
