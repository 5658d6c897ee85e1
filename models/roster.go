package models

// RosterEntry — строка состава, полученная скрейпером с сайта ассоциации.
type RosterEntry struct {
	Number   string `json:"number,omitempty"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	IsCoach  bool   `json:"is_coach,omitempty"`
}
