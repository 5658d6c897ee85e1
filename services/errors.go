package services

import "errors"

// Общие ошибки сервисного слоя и их маппинг на HTTP живёт в handlers.
var (
	// Ресурсы не найдены
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrDivisionNotFound   = errors.New("division not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrTeamNotFound       = errors.New("team not found")

	// Ошибки валидации: всегда возвращаются вызывающему, никогда не ретраятся
	ErrUnsupportedFormat = errors.New("unsupported playoff format")
	ErrInvalidSlotKey    = errors.New("slot key does not match the bracket template")
	ErrDateOutOfRange    = errors.New("slot date is outside the tournament date range")
	ErrInvalidDiamond    = errors.New("diamond does not belong to the tournament's organization")
	ErrInvalidScore      = errors.New("scores must be non-negative")

	// Ошибки предусловий: вызывающий нарушил порядок шагов
	// (расписать слоты → сгенерировать сетку → вводить счёт)
	ErrDivisionHasNoTeams    = errors.New("division has no teams in non-reserved pools")
	ErrNoStandingsAvailable  = errors.New("no standings available: no completed pool play games")
	ErrSlotsNotScheduled     = errors.New("playoff slots are not scheduled yet: save the slot schedule before generating the bracket")
	ErrIncompleteSeeding     = errors.New("not enough seeded teams for the bracket template")
	ErrDivisionNoPlayoffPool = errors.New("division has no reserved playoff pool configured")

	// Доступ: токен валиден, но турнир принадлежит другой организации
	ErrOrganizationMismatch = errors.New("tournament belongs to a different organization")

	// Ошибки состава (скрейпер)
	ErrRosterURLMissing = errors.New("team has no roster url configured")
	ErrRosterNoMatch    = errors.New("scraped roster does not match the team name")
)
