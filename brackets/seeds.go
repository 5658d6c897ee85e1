package brackets

import (
	"sort"

	"github.com/2capper/ballpark/models"
	"github.com/2capper/ballpark/standings"
)

// ExtractSeedsParams — входные данные извлечения посева. Игры должны быть
// завершёнными неплей-офф играми между командами дивизиона; фильтрацию
// делает вызывающий сервис.
type ExtractSeedsParams struct {
	Teams   []*models.Team
	Pools   []*models.Pool
	Games   []*models.Game
	Format  models.PlayoffFormat
	Pattern models.SeedingPattern

	// Заявленное у турнира число пулов; 0 — взять фактическое.
	PoolCount int
}

// ExtractSeeds превращает таблицы группового этапа в отображение
// посев → команда. Результат может оказаться короче, чем требует формат,
// если команд или игр недостаточно — это не ошибка сама по себе, решение
// оставлено вызывающему.
//
// Формат top_8_four_pools всегда сеется по пулам, какой бы паттерн ни был
// заявлен у турнира.
func ExtractSeeds(p ExtractSeedsParams) []models.SeededTeam {
	pattern := p.Pattern
	if p.Format == models.FormatTop8FourPools {
		pattern = models.SeedingCrossPool
	}

	if pattern == models.SeedingCrossPool {
		return crossPoolSeeds(p)
	}
	return standardSeeds(p)
}

// standardSeeds: общий рейтинг дивизиона, посевы 1..K по порядку.
func standardSeeds(p ExtractSeedsParams) []models.SeededTeam {
	table := standings.Calculate(p.Teams, p.Games)

	count := p.Format.TeamCount()
	if count > len(table) {
		count = len(table)
	}

	seeds := make([]models.SeededTeam, 0, count)
	for i := 0; i < count; i++ {
		seeds = append(seeds, models.SeededTeam{
			Seed:   i + 1,
			TeamID: table[i].TeamID,
		})
	}
	return seeds
}

// crossPoolSeeds: таблица считается независимо внутри каждого пула (только
// по играм между командами пула), пулы идут в алфавитном порядке имён, из
// каждого берётся верхушка K/поолов. Конкатенация пул за пулом даёт
// посевы A1,A2,B1,B2,C1,C2,D1,D2 — ровно тот порядок, на который
// рассчитаны шаблоны по-пуловых форматов.
func crossPoolSeeds(p ExtractSeedsParams) []models.SeededTeam {
	poolsByID := make(map[string]*models.Pool, len(p.Pools))
	for _, pool := range p.Pools {
		poolsByID[pool.ID] = pool
	}

	teamsByPool := make(map[string][]*models.Team)
	for _, team := range p.Teams {
		if team.PoolID == nil {
			continue
		}
		if _, ok := poolsByID[*team.PoolID]; !ok {
			continue
		}
		teamsByPool[*team.PoolID] = append(teamsByPool[*team.PoolID], team)
	}

	poolIDs := make([]string, 0, len(teamsByPool))
	for id := range teamsByPool {
		poolIDs = append(poolIDs, id)
	}
	sort.Slice(poolIDs, func(i, j int) bool {
		return poolsByID[poolIDs[i]].Name < poolsByID[poolIDs[j]].Name
	})

	// Квота на пул считается от заявленного числа пулов, а не от числа
	// пулов с командами: если половина пулов пуста, посев выйдет коротким
	// и генератор сетки откажет, вместо того чтобы молча забрать из
	// оставшихся пулов больше команд, чем положено.
	poolCount := p.PoolCount
	if poolCount <= 0 {
		poolCount = len(poolIDs)
	}

	perPool := 0
	if poolCount > 0 {
		perPool = p.Format.TeamCount() / poolCount
	}

	seeds := make([]models.SeededTeam, 0, p.Format.TeamCount())
	nextSeed := 1
	for _, poolID := range poolIDs {
		poolTeams := teamsByPool[poolID]
		table := standings.Calculate(poolTeams, intraPoolGames(p.Games, poolTeams))

		take := perPool
		if take > len(table) {
			take = len(table)
		}
		for rank := 0; rank < take; rank++ {
			poolName := poolsByID[poolID].Name
			poolRank := rank + 1
			seeds = append(seeds, models.SeededTeam{
				Seed:     nextSeed,
				TeamID:   table[rank].TeamID,
				PoolName: &poolName,
				PoolRank: &poolRank,
			})
			nextSeed++
		}
	}
	return seeds
}

// intraPoolGames отбирает игры, обе стороны которых входят в пул.
func intraPoolGames(games []*models.Game, poolTeams []*models.Team) []*models.Game {
	inPool := make(map[string]bool, len(poolTeams))
	for _, t := range poolTeams {
		inPool[t.ID] = true
	}

	out := make([]*models.Game, 0, len(games))
	for _, g := range games {
		if g.HomeTeamID == nil || g.AwayTeamID == nil {
			continue
		}
		if inPool[*g.HomeTeamID] && inPool[*g.AwayTeamID] {
			out = append(out, g)
		}
	}
	return out
}
