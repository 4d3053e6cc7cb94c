package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joaomidowz/vargas-mix/handlers"
	"github.com/joaomidowz/vargas-mix/middleware"
	"github.com/joaomidowz/vargas-mix/models"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Tournament *handlers.TournamentHandler
	Match      *handlers.MatchHandler
	GameMap    *handlers.GameMapHandler
	Admin      *handlers.AdminHandler
	Websocket  *handlers.WebsocketHandler
}

func Setup(router *chi.Mux, h Handlers, jwtSecret string, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	secret := []byte(jwtSecret)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/login", h.Auth.Login)

	// Всё остальное доступно только с токеном зрителя или админа.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(secret))
		r.Use(middleware.Authorize(models.RoleViewer, models.RoleAdmin))

		r.Get("/players", h.Player.List)
		r.Get("/players/leaderboard", h.Player.Leaderboard)
		r.Get("/maps", h.GameMap.List)
		r.Get("/tournament", h.Tournament.Get)
		r.Get("/matches", h.Match.History)
		r.Get("/matches/map-stats", h.Match.MapStats)
		r.Get("/ws", h.Websocket.Serve)
	})

	// Мутации — только админ.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(secret))
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Post("/players", h.Player.Create)
		r.Patch("/players/{playerID}/sub", h.Player.SetSub)
		r.Patch("/players/{playerID}/champion", h.Player.SetChampion)
		r.Delete("/players/{playerID}", h.Player.Delete)

		r.Post("/maps", h.GameMap.Create)
		r.Post("/maps/{mapID}/image", h.GameMap.UploadImage)
		r.Delete("/maps/{mapID}", h.GameMap.Delete)

		r.Post("/tournament/generate", h.Tournament.Generate)
		r.Post("/tournament/veto/ban", h.Tournament.BanMap)
		r.Post("/tournament/veto/redo", h.Tournament.RedoVeto)
		r.Post("/tournament/result", h.Tournament.RecordResult)
		r.Post("/tournament/reset", h.Tournament.Reset)

		r.Delete("/matches/{matchID}", h.Match.Delete)

		r.Post("/admin/reset-season", h.Admin.ResetSeason)
	})
}
