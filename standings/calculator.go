package standings

import (
	"sort"

	"github.com/2capper/ballpark/models"
)

// Calculate строит таблицу для набора команд по завершённым играм между ними.
// Результат отсортирован: очки по убыванию, ничьи в очках разрешаются
// каскадом тай-брейков (см. tiebreak.go). Ранги проставлены от 1.
//
// Статистика всегда производная — функция чистая и не трогает БД.
func Calculate(teams []*models.Team, games []*models.Game) []*models.Standing {
	byID := make(map[string]*models.Standing, len(teams))
	result := make([]*models.Standing, 0, len(teams))

	for _, team := range teams {
		s := &models.Standing{TeamID: team.ID, TeamName: team.Name}
		byID[team.ID] = s
		result = append(result, s)
	}

	completed := completedGames(games, byID)
	for _, game := range completed {
		home := byID[*game.HomeTeamID]
		away := byID[*game.AwayTeamID]
		accumulate(home, away, game)
	}

	for _, s := range result {
		s.Points = 2*s.Wins + s.Ties
		s.RunsForPerInning = perInning(s.RunsFor, s.OffensiveInnings)
		s.RunsAgainstPerInning = perInning(s.RunsAgainst, s.DefensiveInnings)
	}

	// Первичная сортировка по очкам; равные по очкам группы упорядочивает
	// каскад. Вторичный ключ по имени нужен только для детерминизма
	// до применения каскада.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Points != result[j].Points {
			return result[i].Points > result[j].Points
		}
		return lessByName(result[i], result[j])
	})

	ranked := make([]*models.Standing, 0, len(result))
	for start := 0; start < len(result); {
		end := start
		for end < len(result) && result[end].Points == result[start].Points {
			end++
		}
		group := result[start:end]
		if len(group) > 1 {
			group = breakTies(group, completed)
		}
		ranked = append(ranked, group...)
		start = end
	}

	for i, s := range ranked {
		s.Rank = i + 1
	}
	return ranked
}

// completedGames отбирает завершённые игры, обе стороны которых входят в
// рассматриваемый набор команд.
func completedGames(games []*models.Game, byID map[string]*models.Standing) []*models.Game {
	out := make([]*models.Game, 0, len(games))
	for _, g := range games {
		if g.Status != models.GameStatusCompleted {
			continue
		}
		if g.HomeTeamID == nil || g.AwayTeamID == nil {
			continue
		}
		if _, ok := byID[*g.HomeTeamID]; !ok {
			continue
		}
		if _, ok := byID[*g.AwayTeamID]; !ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

func accumulate(home, away *models.Standing, game *models.Game) {
	homeScore := derefInt(game.HomeScore)
	awayScore := derefInt(game.AwayScore)

	// Раны и иннинги копятся по протоколу даже при форфейте;
	// форфейт переопределяет только исход.
	home.RunsFor += homeScore
	home.RunsAgainst += awayScore
	away.RunsFor += awayScore
	away.RunsAgainst += homeScore
	home.OffensiveInnings += derefFloat(game.HomeInningsBatted)
	home.DefensiveInnings += derefFloat(game.AwayInningsBatted)
	away.OffensiveInnings += derefFloat(game.AwayInningsBatted)
	away.DefensiveInnings += derefFloat(game.HomeInningsBatted)

	switch game.ForfeitStatus {
	case models.ForfeitHome:
		home.Losses++
		home.ForfeitLosses++
		away.Wins++
		return
	case models.ForfeitAway:
		away.Losses++
		away.ForfeitLosses++
		home.Wins++
		return
	}

	switch {
	case homeScore > awayScore:
		home.Wins++
		away.Losses++
	case awayScore > homeScore:
		away.Wins++
		home.Losses++
	default:
		home.Ties++
		away.Ties++
	}
}

func perInning(runs int, innings float64) float64 {
	if innings == 0 {
		return 0
	}
	return float64(runs) / innings
}

func lessByName(a, b *models.Standing) bool {
	if a.TeamName != b.TeamName {
		return a.TeamName < b.TeamName
	}
	return a.TeamID < b.TeamID
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
