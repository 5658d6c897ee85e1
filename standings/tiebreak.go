package standings

import (
	"sort"

	"github.com/2capper/ballpark/models"
)

// Каскад тай-брейков для группы команд с равными очками:
//
//  1. меньше форфейтных поражений;
//  2. только для пары — личные встречи (строго больше побед, чем
//     поражений, над соперником);
//  3. пропущенные раны за иннинг в играх внутри связанной группы;
//  4. пропущенные раны за иннинг по всем играм;
//  5. набранные раны за иннинг внутри связанной группы;
//  6. набранные раны за иннинг по всем играм;
//  7. алфавит по имени команды.
//
// Если этап делит группу, каскад для каждой получившейся подгруппы
// запускается заново с этапа 1 (а не продолжается со следующего этапа) —
// так исторически считает оргкомитет, и смена поведения меняла бы
// реальные итоговые таблицы.
//
// Метрика этапа нормализована так, что меньше — лучше; nil означает
// «этап неприменим» (личные встречи для групп из трёх и более).

type tieBreakStage func(group []*models.Standing, games []*models.Game) []float64

var tieBreakStages = []tieBreakStage{
	stageForfeitLosses,
	stageHeadToHead,
	stageRunsAgainstAmongTied,
	stageRunsAgainstOverall,
	stageRunsForAmongTied,
	stageRunsForOverall,
}

// breakTies возвращает группу, упорядоченную каскадом. Гарантирует полный
// порядок: алфавитный этап (с ID как последним ключом) делит любую группу.
func breakTies(group []*models.Standing, games []*models.Game) []*models.Standing {
	if len(group) <= 1 {
		return group
	}

	for _, stage := range tieBreakStages {
		metrics := stage(group, games)
		if metrics == nil || uniform(metrics) {
			continue
		}
		return splitAndRecurse(group, metrics, games)
	}

	sorted := append([]*models.Standing(nil), group...)
	sort.Slice(sorted, func(i, j int) bool { return lessByName(sorted[i], sorted[j]) })
	return sorted
}

// splitAndRecurse упорядочивает группу по метрике и перезапускает каскад
// внутри каждой подгруппы, оставшейся связанной.
func splitAndRecurse(group []*models.Standing, metrics []float64, games []*models.Game) []*models.Standing {
	idx := make([]int, len(group))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return metrics[idx[a]] < metrics[idx[b]] })

	out := make([]*models.Standing, 0, len(group))
	for start := 0; start < len(idx); {
		end := start
		for end < len(idx) && metrics[idx[end]] == metrics[idx[start]] {
			end++
		}
		sub := make([]*models.Standing, 0, end-start)
		for _, i := range idx[start:end] {
			sub = append(sub, group[i])
		}
		out = append(out, breakTies(sub, games)...)
		start = end
	}
	return out
}

func uniform(metrics []float64) bool {
	for _, m := range metrics[1:] {
		if m != metrics[0] {
			return false
		}
	}
	return true
}

func stageForfeitLosses(group []*models.Standing, _ []*models.Game) []float64 {
	metrics := make([]float64, len(group))
	for i, s := range group {
		metrics[i] = float64(s.ForfeitLosses)
	}
	return metrics
}

func stageHeadToHead(group []*models.Standing, games []*models.Game) []float64 {
	if len(group) != 2 {
		return nil
	}
	a, b := group[0], group[1]
	winsA, winsB := 0, 0
	for _, g := range games {
		if !involvesBoth(g, a.TeamID, b.TeamID) {
			continue
		}
		switch WinnerTeamID(g) {
		case a.TeamID:
			winsA++
		case b.TeamID:
			winsB++
		}
	}
	// Победы минус поражения над соперником; у пары величины зеркальны.
	return []float64{float64(winsB - winsA), float64(winsA - winsB)}
}

func stageRunsAgainstAmongTied(group []*models.Standing, games []*models.Game) []float64 {
	return ratesAmongTied(group, games, false)
}

func stageRunsAgainstOverall(group []*models.Standing, _ []*models.Game) []float64 {
	metrics := make([]float64, len(group))
	for i, s := range group {
		metrics[i] = s.RunsAgainstPerInning
	}
	return metrics
}

func stageRunsForAmongTied(group []*models.Standing, games []*models.Game) []float64 {
	return ratesAmongTied(group, games, true)
}

func stageRunsForOverall(group []*models.Standing, _ []*models.Game) []float64 {
	metrics := make([]float64, len(group))
	for i, s := range group {
		metrics[i] = -s.RunsForPerInning
	}
	return metrics
}

// ratesAmongTied считает раны за иннинг по играм, где обе стороны входят в
// связанную группу. offensive=true даёт набранные (больше — лучше, знак
// инвертирован), иначе пропущенные.
func ratesAmongTied(group []*models.Standing, games []*models.Game, offensive bool) []float64 {
	tied := make(map[string]bool, len(group))
	for _, s := range group {
		tied[s.TeamID] = true
	}

	type tally struct {
		runs    int
		innings float64
	}
	totals := make(map[string]*tally, len(group))
	for _, s := range group {
		totals[s.TeamID] = &tally{}
	}

	for _, g := range games {
		if g.HomeTeamID == nil || g.AwayTeamID == nil {
			continue
		}
		home, away := *g.HomeTeamID, *g.AwayTeamID
		if !tied[home] || !tied[away] {
			continue
		}
		homeScore, awayScore := derefInt(g.HomeScore), derefInt(g.AwayScore)
		homeInnings, awayInnings := derefFloat(g.HomeInningsBatted), derefFloat(g.AwayInningsBatted)
		if offensive {
			totals[home].runs += homeScore
			totals[home].innings += homeInnings
			totals[away].runs += awayScore
			totals[away].innings += awayInnings
		} else {
			totals[home].runs += awayScore
			totals[home].innings += awayInnings
			totals[away].runs += homeScore
			totals[away].innings += homeInnings
		}
	}

	metrics := make([]float64, len(group))
	for i, s := range group {
		t := totals[s.TeamID]
		rate := perInning(t.runs, t.innings)
		if offensive {
			rate = -rate
		}
		metrics[i] = rate
	}
	return metrics
}

func involvesBoth(g *models.Game, teamA, teamB string) bool {
	if g.HomeTeamID == nil || g.AwayTeamID == nil {
		return false
	}
	home, away := *g.HomeTeamID, *g.AwayTeamID
	return (home == teamA && away == teamB) || (home == teamB && away == teamA)
}

// WinnerTeamID возвращает ID победителя игры или "" при ничьей без
// форфейта. Форфейт имеет приоритет над счётом. Этой же функцией
// пользуется каскад победителей в сервисе игр — определение победителя
// живёт в одном месте.
func WinnerTeamID(g *models.Game) string {
	switch g.ForfeitStatus {
	case models.ForfeitHome:
		return derefStr(g.AwayTeamID)
	case models.ForfeitAway:
		return derefStr(g.HomeTeamID)
	}
	homeScore, awayScore := derefInt(g.HomeScore), derefInt(g.AwayScore)
	switch {
	case homeScore > awayScore:
		return derefStr(g.HomeTeamID)
	case awayScore > homeScore:
		return derefStr(g.AwayTeamID)
	}
	return ""
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
