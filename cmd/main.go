package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cprater/football-pickem-backend-sub000/config"
	"github.com/cprater/football-pickem-backend-sub000/db"
	"github.com/cprater/football-pickem-backend-sub000/handlers"
	"github.com/cprater/football-pickem-backend-sub000/live"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
	"github.com/cprater/football-pickem-backend-sub000/routes"
	"github.com/cprater/football-pickem-backend-sub000/services"
	"github.com/cprater/football-pickem-backend-sub000/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Media storage is optional; without it avatar and logo uploads are
	// rejected but everything else works.
	var uploader storage.FileUploader
	if cfg.MediaStorageConfigured() {
		uploader, err = storage.NewR2Uploader(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized")
	} else {
		logger.Info("media storage not configured, uploads disabled")
	}

	liveHub := live.NewHub()
	go liveHub.Run()
	logger.Info("live update hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	memberRepo := repositories.NewPostgresMemberRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	pickRepo := repositories.NewPostgresPickRepository(dbConn)
	inviteRepo := repositories.NewPostgresInviteRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	teamService := services.NewTeamService(teamRepo, uploader)
	leagueService := services.NewLeagueService(leagueRepo, memberRepo, userRepo)
	inviteService := services.NewInviteService(inviteRepo, leagueRepo, memberRepo)
	gameService := services.NewGameService(dbConn, gameRepo, pickRepo, liveHub, logger)
	pickService := services.NewPickService(pickRepo, gameRepo, leagueRepo, memberRepo)
	standingsService := services.NewStandingsService(leagueRepo, memberRepo, pickRepo)
	dashboardService := services.NewDashboardService(userRepo, leagueRepo, gameRepo, pickRepo)
	logger.Info("services initialized")

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := teamService.SeedTeams(seedCtx); err != nil {
		cancelSeed()
		logger.Error("failed to seed teams", slog.Any("error", err))
		os.Exit(1)
	}
	cancelSeed()
	logger.Info("team catalog seeded")

	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		User:      handlers.NewUserHandler(userService),
		Team:      handlers.NewTeamHandler(teamService),
		League:    handlers.NewLeagueHandler(leagueService),
		Game:      handlers.NewGameHandler(gameService),
		Pick:      handlers.NewPickHandler(pickService),
		Standings: handlers.NewStandingsHandler(standingsService),
		Invite:    handlers.NewInviteHandler(inviteService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		WebSocket: handlers.NewWebSocketHandler(liveHub),
	}

	router := chi.NewRouter()
	routes.SetupRoutes(router, h, []byte(cfg.JWTSecretKey), cfg.CORSOrigins)
	logger.Info("routes configured")

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
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
