package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gncc/cricket-dashboard/cards"
	"github.com/gncc/cricket-dashboard/config"
	"github.com/gncc/cricket-dashboard/db"
	"github.com/gncc/cricket-dashboard/handlers"
	"github.com/gncc/cricket-dashboard/realtime"
	"github.com/gncc/cricket-dashboard/repositories"
	api "github.com/gncc/cricket-dashboard/routes"
	"github.com/gncc/cricket-dashboard/services"
	"github.com/gncc/cricket-dashboard/storage"
	"github.com/gncc/cricket-dashboard/web"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cards.HomeTeamName = cfg.TeamName
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("team", cfg.TeamName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}

	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, logo and avatar uploads are disabled")
	}

	hub := realtime.NewHub(logger)
	listener := realtime.NewListener(cfg.DatabaseURL, hub, logger)
	go func() {
		if err := listener.Run(ctx); err != nil {
			logger.Error("change listener failed", slog.Any("error", err))
		}
	}()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey, cfg.PublicURL, logger)
	matchService := services.NewMatchService(matchRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo, uploader, logger)

	templates, err := web.LoadTemplates(web.Templates())
	if err != nil {
		logger.Error("failed to parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	secureCookies := strings.HasPrefix(cfg.PublicURL, "https://")
	authHandler := handlers.NewAuthHandler(authService, secureCookies, logger)
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:      authHandler,
		Pages:     handlers.NewPageHandler(templates, authHandler, matchService, playerService, hub, logger),
		Matches:   handlers.NewMatchHandler(matchService, hub, logger),
		Players:   handlers.NewPlayerHandler(playerService, logger),
		WebSocket: handlers.NewWebSocketHandler(ctx, matchService, hub, cfg.CORSAllowedOrigins, logger),
	}, authService, cfg.CORSAllowedOrigins, logger)

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
		logger.Info("starting server", slog.String("address", server.Addr), slog.String("public_url", cfg.PublicURL))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
