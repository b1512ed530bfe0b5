package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fairwaylive/golf-tournament/handlers"
	"github.com/fairwaylive/golf-tournament/middleware"
	"github.com/fairwaylive/golf-tournament/models"
)

// SetupRoutes assembles the full HTTP surface. Mutating tournament, team,
// round and score-deletion routes require an admin token; score submission
// and every read stay open, matching how scoring tablets and viewers use
// the system.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	roundHandler *handlers.RoundHandler,
	scoreHandler *handlers.ScoreHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAdmin := func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize(models.RoleAdmin))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/teams", tournamentHandler.GetTeams)
		r.Get("/{tournamentID}/rounds", tournamentHandler.GetRounds)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}", tournamentHandler.Update)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogo)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.Get)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", teamHandler.Create)
			r.Put("/{teamID}", teamHandler.Update)
			r.Delete("/{teamID}", teamHandler.Delete)
		})
	})

	router.Route("/rounds", func(r chi.Router) {
		r.Get("/{roundID}", roundHandler.Get)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", roundHandler.Create)
			r.Delete("/{roundID}", roundHandler.Delete)
		})
	})

	router.Route("/scores", func(r chi.Router) {
		r.Get("/", scoreHandler.List)
		r.Post("/", scoreHandler.Submit)
		r.Get("/{scoreID}", scoreHandler.Get)
		r.Get("/team/{teamID}/round/{roundID}", scoreHandler.GetTeamRoundScores)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Delete("/{scoreID}", scoreHandler.Delete)
		})
	})

	router.Route("/leaderboard", func(r chi.Router) {
		r.Get("/tournament/{tournamentID}", leaderboardHandler.GetTournamentLeaderboard)
		r.Get("/tournament/{tournamentID}/round/{roundNumber}", leaderboardHandler.GetRoundLeaderboard)
		r.Get("/tournament/{tournamentID}/summary", leaderboardHandler.GetSummary)
		r.Get("/tournament/{tournamentID}/team/{teamID}", leaderboardHandler.GetTeamWindow)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
