package app

import (
	"log/slog"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/auth"
	"github.com/dt604/bloodsheet-golf/internal/guard"
	"github.com/dt604/bloodsheet-golf/internal/handler"
	"github.com/dt604/bloodsheet-golf/internal/infra"
	"github.com/dt604/bloodsheet-golf/internal/repository"
	"github.com/dt604/bloodsheet-golf/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	JWTMgr             *auth.JWTManager
	Hub                *infra.WSHub
	Logger             *slog.Logger
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	matchRepo := repository.NewMatchRepository()
	playerRepo := repository.NewPlayerRepository()
	scoreRepo := repository.NewScoreRepository()
	pressRepo := repository.NewPressRepository()
	attestationRepo := repository.NewAttestationRepository()
	courseRepo := repository.NewCourseRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Services
	matchSvc := service.NewMatchService(pool, matchRepo, playerRepo, courseRepo, attestationRepo, outboxRepo, logger)
	scoreSvc := service.NewScoreService(pool, matchRepo, playerRepo, scoreRepo, pressRepo, courseRepo, outboxRepo, logger)

	// Handlers
	matchHandler := handler.NewMatchHandler(matchSvc)
	scoreHandler := handler.NewScoreHandler(scoreSvc)
	scoreboardHandler := handler.NewScoreboardHandler(scoreSvc)
	courseHandler := handler.NewCourseHandler(matchSvc)
	feedHandler := handler.NewFeedHandler(deps.Hub)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Authenticated routes
	limiter := guard.NewRateLimiter(120, time.Minute)
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))
		r.Use(handler.RateLimit(limiter))

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", matchHandler.CreateMatch)
			r.Post("/join/{code}", matchHandler.Join)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", matchHandler.GetMatch)
				r.Delete("/", matchHandler.Abandon)
				r.Get("/players", matchHandler.ListPlayers)
				r.Post("/guests", matchHandler.AddGuest)
				r.Patch("/players/{playerId}/handicap", matchHandler.CorrectHandicap)
				r.Post("/submit", matchHandler.Submit)
				r.Post("/attest", matchHandler.Attest)
				r.Get("/attestations", matchHandler.ListAttestations)

				r.Put("/scores", scoreHandler.UpsertScore)
				r.Get("/scores", scoreHandler.ListScores)
				r.Post("/presses", scoreHandler.OpenPress)
				r.Get("/presses", scoreHandler.ListPresses)

				r.Get("/scoreboard", scoreboardHandler.GetScoreboard)
				r.Get("/settlement", scoreboardHandler.GetSettlement)
			})
		})

		r.Route("/groups/{id}", func(r chi.Router) {
			r.Get("/matches", matchHandler.ListGroup)
			r.Get("/scoreboard", scoreboardHandler.GetGroupScoreboard)
			r.Get("/settlement", scoreboardHandler.GetGroupSettlement)
		})

		r.Route("/courses/{id}", func(r chi.Router) {
			r.Get("/", courseHandler.GetCourse)
			r.Patch("/stroke-index", courseHandler.CorrectStrokeIndex)
		})

		// WebSocket feed. JSONContentType is harmless here, the upgrade
		// replaces the response entirely.
		r.Get("/feed", feedHandler.Subscribe)
	})

	return r
}
