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

	"github.com/Dosada05/hackathon-system/config"
	"github.com/Dosada05/hackathon-system/db"
	"github.com/Dosada05/hackathon-system/handlers"
	"github.com/Dosada05/hackathon-system/live"
	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/repositories"
	api "github.com/Dosada05/hackathon-system/routes"
	"github.com/Dosada05/hackathon-system/services"
	"github.com/Dosada05/hackathon-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const schedulerInterval = 30 * time.Second

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

	// Object storage is optional: without credentials the upload
	// endpoints answer 501 instead of failing startup.
	var uploader storage.FileUploader
	if cfg.UploadsConfigured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize object storage uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("object storage uploader initialized")
	} else {
		logger.Warn("object storage not configured, uploads disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	collegeRepo := repositories.NewPostgresCollegeRepository(dbConn)
	questionRepo := repositories.NewPostgresQuestionRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	hackathonRepo := repositories.NewPostgresHackathonRepository(dbConn)
	evaluationRepo := repositories.NewPostgresEvaluationRepository(dbConn)
	winnerRepo := repositories.NewPostgresWinnerRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, collegeRepo)
	userService := services.NewUserService(userRepo, logger)
	collegeService := services.NewCollegeService(collegeRepo)
	questionService := services.NewQuestionService(questionRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, questionRepo, uploader, wsHub)
	hackathonService := services.NewHackathonService(hackathonRepo, teamRepo, uploader, wsHub, logger)
	evaluationService := services.NewEvaluationService(evaluationRepo, wsHub)
	winnerService := services.NewWinnerService(winnerRepo, hackathonRepo, wsHub)
	logger.Info("services initialized")

	// Hackathon statuses follow their dates without manual intervention.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("hackathon status scheduler started", slog.Duration("interval", schedulerInterval))

		if err := hackathonService.AutoUpdateStatusesByDates(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := hackathonService.AutoUpdateStatusesByDates(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	auth := middleware.NewAuth(cfg.JWTSecretKey)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	collegeHandler := handlers.NewCollegeHandler(collegeService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	teamHandler := handlers.NewTeamHandler(teamService)
	hackathonHandler := handlers.NewHackathonHandler(hackathonService)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService)
	winnerHandler := handlers.NewWinnerHandler(winnerService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		auth,
		authHandler,
		userHandler,
		collegeHandler,
		questionHandler,
		teamHandler,
		hackathonHandler,
		evaluationHandler,
		winnerHandler,
		webSocketHandler,
	)
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
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

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
