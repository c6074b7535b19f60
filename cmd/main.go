package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/botola-fantasy/config"
	"github.com/Dosada05/botola-fantasy/db"
	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/handlers"
	"github.com/Dosada05/botola-fantasy/live"
	"github.com/Dosada05/botola-fantasy/repositories"
	api "github.com/Dosada05/botola-fantasy/routes"
	"github.com/Dosada05/botola-fantasy/services"
	"github.com/Dosada05/botola-fantasy/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Цены и бюджеты отдаём числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("r2_enabled", cfg.R2Enabled()))

	// Подключение к базе данных
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

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrateCommand(dbConn, os.Args[2:], logger); err != nil {
			logger.Error("migration command failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	if cfg.AutoMigrate {
		if err := db.MigrateUp(dbConn, logger); err != nil {
			logger.Error("failed to apply migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if err := run(cfg, dbConn, logger); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

// runMigrateCommand: migrate up | migrate down N | migrate status
func runMigrateCommand(conn *sql.DB, args []string, logger *slog.Logger) error {
	if len(args) == 0 {
		return errors.New("usage: migrate up | down N | status")
	}
	switch args[0] {
	case "up":
		return db.MigrateUp(conn, logger)
	case "down":
		if len(args) < 2 {
			return errors.New("usage: migrate down N")
		}
		return db.MigrateDown(conn, args[1], logger)
	case "status":
		return db.MigrateStatus(conn, logger)
	default:
		return fmt.Errorf("unknown migrate subcommand %q", args[0])
	}
}

func run(cfg *config.Config, dbConn *sql.DB, logger *slog.Logger) error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// Инициализация загрузчика файлов (Cloudflare R2), если настроен
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		u, err := storage.NewCloudflareR2Uploader(appCtx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		uploader = u
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, player image upload disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run(appCtx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tx := repositories.NewPostgresTransactor(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	ledgerRepo := repositories.NewPostgresLedgerRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	gameweekRepo := repositories.NewPostgresGameweekRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	rules := fantasy.DefaultRules()
	authService := services.NewAuthService(tx, userRepo, ledgerRepo, gameweekRepo, rules, logger)
	playerService := services.NewPlayerService(playerRepo, uploader, logger)
	gameweekService := services.NewGameweekService(gameweekRepo, logger)
	squadService := services.NewSquadService(tx, ledgerRepo, playerRepo, gameweekRepo, playerService, rules, logger)
	leagueService := services.NewLeagueService(leagueRepo, ledgerRepo, userRepo, playerService, wsHub, logger)
	matchEventService := services.NewMatchEventService(tx, playerRepo, wsHub, logger)
	logger.Info("Services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		IngestAPIKey:   cfg.IngestAPIKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey, cfg.JWTTTL),
		Player:     handlers.NewPlayerHandler(playerService),
		Squad:      handlers.NewSquadHandler(squadService),
		League:     handlers.NewLeagueHandler(leagueService),
		MatchEvent: handlers.NewMatchEventHandler(matchEventService, logger),
		Gameweek:   handlers.NewGameweekHandler(gameweekService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}
