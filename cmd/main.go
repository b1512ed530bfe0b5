package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairwaylive/golf-tournament/config"
	"github.com/fairwaylive/golf-tournament/db"
	"github.com/fairwaylive/golf-tournament/handlers"
	"github.com/fairwaylive/golf-tournament/leaderboard"
	"github.com/fairwaylive/golf-tournament/repositories"
	"github.com/fairwaylive/golf-tournament/routes"
	"github.com/fairwaylive/golf-tournament/services"
	"github.com/fairwaylive/golf-tournament/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	database, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("initializing R2 uploader: %w", err)
		}
		logger.Info("logo uploads enabled", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	hub := leaderboard.NewHub(logger)
	go hub.Run()

	tournamentRepo := repositories.NewPostgresTournamentRepository(database)
	teamRepo := repositories.NewPostgresTeamRepository(database)
	roundRepo := repositories.NewPostgresRoundRepository(database)
	scoreRepo := repositories.NewPostgresScoreRepository(database)
	userRepo := repositories.NewPostgresUserRepository(database)

	leaderboardService := services.NewLeaderboardService(tournamentRepo, teamRepo, roundRepo, scoreRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, roundRepo, uploader, logger)
	teamService := services.NewTeamService(teamRepo, tournamentRepo)
	roundService := services.NewRoundService(roundRepo, tournamentRepo)
	scoreService := services.NewScoreService(scoreRepo, teamRepo, roundRepo, leaderboardService, hub, logger)
	authService := services.NewAuthService(userRepo)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	roundHandler := handlers.NewRoundHandler(roundService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	wsHandler := handlers.NewWebSocketHandler(hub, tournamentService, leaderboardService, logger)

	router := chi.NewRouter()
	routes.SetupRoutes(router, cfg.JWTSecretKey,
		authHandler,
		tournamentHandler,
		teamHandler,
		roundHandler,
		scoreHandler,
		leaderboardHandler,
		wsHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				return fmt.Errorf("forcing server close: %w", closeErr)
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
