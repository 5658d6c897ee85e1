package routes

import (
	"github.com/2capper/ballpark/handlers"
	"github.com/2capper/ballpark/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes настраивает маршруты: чтение таблиц и сетки публичное (табло
// и зрители), всё, что пишет, — только для организаторов с токеном.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	standingsHandler *handlers.StandingsHandler,
	scheduleHandler *handlers.ScheduleHandler,
	bracketHandler *handlers.BracketHandler,
	gameHandler *handlers.GameHandler,
	rosterHandler *handlers.RosterHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/tournaments/{tournamentID}/divisions/{divisionID}", func(r chi.Router) {
		r.Get("/standings", standingsHandler.GetStandingsHandler)
		r.Get("/bracket", bracketHandler.GetBracketHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(middleware.RoleOrganizer, middleware.RoleAdmin))

			r.Put("/bracket/slots", scheduleHandler.SaveSlotsHandler)
			r.Post("/bracket/generate", bracketHandler.GenerateBracketHandler)
		})
	})

	router.Route("/games/{gameID}", func(r chi.Router) {
		r.Get("/", gameHandler.GetGameHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(middleware.RoleOrganizer, middleware.RoleAdmin))

			r.Patch("/", gameHandler.UpdateGameHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(middleware.RoleOrganizer, middleware.RoleAdmin))

		r.Post("/teams/{teamID}/roster/import", rosterHandler.ImportRosterHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
