package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pathforge/pathforge-backend/internal/db"
	"github.com/pathforge/pathforge-backend/internal/handlers"
	"github.com/pathforge/pathforge-backend/internal/logger"
	"github.com/pathforge/pathforge-backend/internal/middleware"
	"github.com/pathforge/pathforge-backend/internal/repos"
	"github.com/pathforge/pathforge-backend/internal/server"
	"github.com/pathforge/pathforge-backend/internal/services"
	"github.com/pathforge/pathforge-backend/internal/utils"
	"gorm.io/gorm"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Database
	var gdb *gorm.DB
	switch utils.GetEnv("DB_DRIVER", "postgres", log) {
	case "sqlite":
		sqliteService, err := db.NewSQLiteService(log)
		if err != nil {
			log.Error("SQLite init failed", "error", err)
			os.Exit(1)
		}
		if err := sqliteService.AutoMigrateAll(); err != nil {
			log.Error("SQLite auto migration failed", "error", err)
			os.Exit(1)
		}
		gdb = sqliteService.DB()
	default:
		postgresService, err := db.NewPostgresService(log)
		if err != nil {
			log.Error("Postgres init failed", "error", err)
			os.Exit(1)
		}
		if err := postgresService.AutoMigrateAll(); err != nil {
			log.Error("Postgres auto migration failed", "error", err)
			os.Exit(1)
		}
		gdb = postgresService.DB()
	}

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	roadmapRepo := repos.NewRoadmapRepo(gdb, log)
	milestoneRepo := repos.NewMilestoneRepo(gdb, log)
	progressRepo := repos.NewUserProgressRepo(gdb, log)

	// Services
	log.Info("Setting up services...")
	modelClient, err := services.NewGeminiClient(log)
	if err != nil {
		log.Error("Could not init GeminiClient", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(gdb, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	generationService := services.NewRoadmapGenerationService(gdb, log, modelClient, roadmapRepo, milestoneRepo, progressRepo)
	roadmapService := services.NewRoadmapService(gdb, log, roadmapRepo, milestoneRepo, progressRepo)
	progressService := services.NewProgressService(gdb, log, roadmapRepo, milestoneRepo)
	statsService := services.NewStatsService(gdb, log, roadmapRepo, milestoneRepo, progressRepo)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	roadmapHandler := handlers.NewRoadmapHandler(generationService, roadmapService)
	milestoneHandler := handlers.NewMilestoneHandler(progressService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:      authHandler,
		RoadmapHandler:   roadmapHandler,
		MilestoneHandler: milestoneHandler,
		StatsHandler:     statsHandler,
		AuthMiddleware:   authMiddleware,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
