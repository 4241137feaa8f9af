package main

import (
	"fmt"
	"log"

	"github.com/architect/ear-training/internal/common/database"
	commonHandlers "github.com/architect/ear-training/internal/common/handlers"
	"github.com/architect/ear-training/internal/common/health"
	"github.com/architect/ear-training/internal/common/middleware"
	"github.com/architect/ear-training/internal/training/generator"
	"github.com/architect/ear-training/internal/training/handlers"
	"github.com/architect/ear-training/internal/training/repository"
	"github.com/architect/ear-training/internal/training/services"
	"github.com/architect/ear-training/internal/training/session"
	"github.com/architect/ear-training/pkg/config"
	"github.com/architect/ear-training/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize stores. A database failure degrades to in-memory stores:
	// history and unlocks are lost at shutdown, training still works.
	var (
		results       repository.ResultStore
		progressStore repository.ProgressStore
		settingsStore repository.SettingsStore
	)
	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		logger.Get().Warn("storage unavailable, running in-memory only", zap.Error(err))
		results = repository.NewMemoryResultStore(cfg.Training.ResultLogCap)
		progressStore = repository.NewMemoryProgressStore()
		settingsStore = repository.NewMemorySettingsStore()
	} else {
		defer database.Close()
		if err := repository.Migrate(database.GetDB()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		results = repository.NewGormResultStore(database.GetDB(), cfg.Training.ResultLogCap)
		progressStore = repository.NewGormProgressStore(database.GetDB())
		settingsStore = repository.NewGormSettingsStore(database.GetDB())
	}

	// Services and session manager
	unlocks := services.NewUnlockService(results)
	stats := services.NewStatsService(results)
	settingsService := services.NewSettingsService(settingsStore, progressStore)
	manager := session.NewManager(session.Deps{
		Generator: generator.New(),
		Results:   results,
		Progress:  progressStore,
		Unlocks:   unlocks,
	})

	// Create Gin engine
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.ErrorHandler())

	// Health check endpoints
	healthChecker := health.NewHealthChecker(database.GetDB(), "1.0.0")
	healthHandler := commonHandlers.NewHealthHandler(healthChecker)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/health/liveness", healthHandler.Liveness)

	// Domain handlers
	sessionHandler := handlers.NewSessionHandler(manager, settingsService)
	progressHandler := handlers.NewProgressHandler(progressStore, unlocks, stats, settingsService)
	theoryHandler := handlers.NewTheoryHandler()

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		training := v1.Group("/training")
		{
			training.POST("/sessions", sessionHandler.CreateSession)
			training.GET("/sessions/:id", sessionHandler.GetSession)
			training.POST("/sessions/:id/answers", sessionHandler.SubmitAnswer)
			training.POST("/sessions/:id/restart", sessionHandler.RestartSession)
			training.PUT("/sessions/:id/settings", sessionHandler.UpdateSessionSettings)
			training.DELETE("/sessions/:id", sessionHandler.DeleteSession)
		}

		v1.GET("/progress", progressHandler.GetProgress)
		v1.GET("/progress/achievements", progressHandler.GetAchievements)
		v1.GET("/statistics", progressHandler.GetStatistics)
		v1.GET("/settings", progressHandler.GetSettings)
		v1.PUT("/settings", progressHandler.UpdateSettings)

		theoryGroup := v1.Group("/theory")
		{
			theoryGroup.GET("/notes", theoryHandler.GetNotes)
			theoryGroup.GET("/intervals", theoryHandler.GetIntervals)
			theoryGroup.GET("/chords", theoryHandler.GetChords)
			theoryGroup.GET("/scales", theoryHandler.GetScales)
			theoryGroup.GET("/scales/:name/preview", theoryHandler.PreviewScale)
			theoryGroup.GET("/presets", theoryHandler.GetPresets)
			theoryGroup.GET("/frequency", theoryHandler.GetFrequency)
		}
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Get().Info("ear training server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
