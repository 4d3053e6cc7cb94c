package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joaomidowz/vargas-mix/config"
	"github.com/joaomidowz/vargas-mix/db"
	"github.com/joaomidowz/vargas-mix/handlers"
	"github.com/joaomidowz/vargas-mix/live"
	"github.com/joaomidowz/vargas-mix/repositories"
	api "github.com/joaomidowz/vargas-mix/routes"
	"github.com/joaomidowz/vargas-mix/services"
	"github.com/joaomidowz/vargas-mix/storage"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
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

	dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, 5*time.Second)
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

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("Cloudflare R2 not configured, map image uploads disabled")
	}

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRecordRepository(dbConn)
	mapRepo := repositories.NewPostgresGameMapRepository(dbConn)
	stateRepo := repositories.NewPostgresTournamentStateRepository(dbConn)
	logger.Info("repositories initialized")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	authService := services.NewAuthService(cfg.SitePasswordHash, cfg.AdminPasswordHash)
	rosterService := services.NewRosterService(playerRepo)
	mapService := services.NewGameMapService(mapRepo, uploader)
	matchService := services.NewMatchService(matchRepo)
	tournamentService := services.NewTournamentService(
		dbConn,
		playerRepo,
		matchRepo,
		mapRepo,
		stateRepo,
		wsHub,
		rng,
		logger,
	)
	adminService := services.NewAdminService(
		dbConn,
		playerRepo,
		matchRepo,
		stateRepo,
		wsHub,
		cfg.AdminPasswordHash,
		logger,
	)
	logger.Info("services initialized")

	router := chi.NewRouter()
	api.Setup(router, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Player:     handlers.NewPlayerHandler(rosterService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Match:      handlers.NewMatchHandler(matchService),
		GameMap:    handlers.NewGameMapHandler(mapService),
		Admin:      handlers.NewAdminHandler(adminService),
		Websocket:  handlers.NewWebsocketHandler(wsHub),
	}, cfg.JWTSecretKey, cfg.CORSAllowedOrigins)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}
