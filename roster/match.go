package roster

import "strings"

// Similarity оценивает совпадение искомого и найденного названий команды по
// шкале 0..10: точное совпадение — 10, вхождение подстроки — 8, иначе
// пословная мера Жаккара, растянутая до 0..9.
func Similarity(searchName, teamName string) int {
	search := strings.ToLower(strings.TrimSpace(searchName))
	team := strings.ToLower(strings.TrimSpace(teamName))

	if search == "" || team == "" {
		return 0
	}
	if search == team {
		return 10
	}
	if strings.Contains(team, search) || strings.Contains(search, team) {
		return 8
	}

	searchWords := wordSet(search)
	teamWords := wordSet(team)

	common := 0
	for w := range searchWords {
		if teamWords[w] {
			common++
		}
	}
	total := len(searchWords) + len(teamWords) - common
	if total == 0 {
		return 0
	}

	score := common * 10 / total
	if score > 9 {
		score = 9
	}
	return score
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
