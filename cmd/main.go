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

	"github.com/2capper/ballpark/brackets"
	"github.com/2capper/ballpark/config"
	"github.com/2capper/ballpark/db"
	"github.com/2capper/ballpark/handlers"
	"github.com/2capper/ballpark/repositories"
	"github.com/2capper/ballpark/roster"
	api "github.com/2capper/ballpark/routes"
	"github.com/2capper/ballpark/services"
	"github.com/2capper/ballpark/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const snapshotInterval = 5 * time.Minute // периодическая перевыгрузка снапшотов

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

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

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	divisionRepo := repositories.NewPostgresDivisionRepository(dbConn)
	poolRepo := repositories.NewPostgresPoolRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	diamondRepo := repositories.NewPostgresDiamondRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	logger.Info("repositories initialized")

	// Публикация снапшотов в Cloudflare R2 — опциональна
	var snapshotService services.SnapshotService
	if cfg.R2Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
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
		snapshotService = services.NewSnapshotService(tournamentRepo, divisionRepo, poolRepo, teamRepo, gameRepo, uploader)
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 not configured, snapshot publishing disabled")
	}

	// Инициализация сервисов
	standingsService := services.NewStandingsService(tournamentRepo, divisionRepo, poolRepo, teamRepo, gameRepo)
	scheduleService := services.NewScheduleService(dbConn, tournamentRepo, divisionRepo, diamondRepo, gameRepo)
	bracketService := services.NewBracketService(dbConn, tournamentRepo, divisionRepo, poolRepo, teamRepo, gameRepo, wsHub, snapshotService)
	gameService := services.NewGameService(dbConn, tournamentRepo, gameRepo, wsHub, snapshotService)
	rosterService := services.NewRosterService(tournamentRepo, teamRepo, roster.NewScraper())
	logger.Info("services initialized")

	// Периодическая перевыгрузка снапшотов идущих турниров
	if snapshotService != nil {
		go func() {
			ticker := time.NewTicker(snapshotInterval)
			defer ticker.Stop()
			logger.Info("snapshot scheduler started", slog.Duration("interval", snapshotInterval))

			for range ticker.C {
				if err := snapshotService.PublishActive(context.Background()); err != nil {
					logger.Error("snapshot scheduler: periodic run failed", slog.Any("error", err))
				}
			}
		}()
	}

	// Инициализация обработчиков HTTP
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	gameHandler := handlers.NewGameHandler(gameService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		standingsHandler,
		scheduleHandler,
		bracketHandler,
		gameHandler,
		rosterHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
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
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
