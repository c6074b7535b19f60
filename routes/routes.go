package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/botola-fantasy/docs"
	"github.com/Dosada05/botola-fantasy/handlers"
	"github.com/Dosada05/botola-fantasy/middleware"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      string
	IngestAPIKey   string
	AllowedOrigins []string
}

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Squad      *handlers.SquadHandler
	League     *handlers.LeagueHandler
	MatchEvent *handlers.MatchEventHandler
	Gameweek   *handlers.GameweekHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router chi.Router, opts Options, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IngestKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// WebSocket без таймаута запроса.
	router.Get("/ws/leagues/{leagueID}", h.WebSocket.ServeLeague)
	router.Get("/ws/players", h.WebSocket.ServePlayers)

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(15 * time.Second))

		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/players", h.Player.ListPlayers)
		r.Get("/players/{playerID}", h.Player.GetPlayer)
		r.Get("/gameweek", h.Gameweek.Current)

		// Любой метод кроме POST получает JSON 405 ещё до проверки ключа.
		// Post регистрируется после HandleFunc и перекрывает только POST.
		r.HandleFunc("/match-events", h.MatchEvent.MethodNotAllowed)
		r.With(middleware.RequireIngestKey(opts.IngestAPIKey)).Post("/match-events", h.MatchEvent.ProcessMatchEvent)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/me", h.Auth.Me)

			r.Route("/squad", func(r chi.Router) {
				r.Get("/", h.Squad.GetSquad)
				r.Post("/reconcile", h.Squad.Reconcile)
				r.Post("/players", h.Squad.AddPlayer)
				r.Delete("/players/{playerID}", h.Squad.SellPlayer)
				r.Put("/captain", h.Squad.SetCaptain)
				r.Put("/vice-captain", h.Squad.SetViceCaptain)
				r.Get("/score", h.Squad.Score)
			})

			r.Route("/leagues", func(r chi.Router) {
				r.Get("/", h.League.ListMyLeagues)
				r.Post("/", h.League.CreateLeague)
				r.Post("/join", h.League.JoinLeague)
				r.Get("/{leagueID}", h.League.GetLeague)
				r.Get("/{leagueID}/leaderboard", h.League.Leaderboard)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/players", h.Player.UpsertPlayer)
				r.Post("/players/{playerID}/image", h.Player.UploadImage)
				r.Put("/gameweek", h.Gameweek.Set)
			})
		})
	})
}
