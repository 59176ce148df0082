package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pathforge/pathforge-backend/internal/handlers"
	"github.com/pathforge/pathforge-backend/internal/middleware"
	"github.com/pathforge/pathforge-backend/internal/utils"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	RoadmapHandler   *handlers.RoadmapHandler
	MilestoneHandler *handlers.MilestoneHandler
	StatsHandler     *handlers.StatsHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowedOrigins := strings.Split(utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", nil), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		protected.GET("/auth/me", cfg.AuthHandler.Me)

		protected.POST("/roadmaps/generate", cfg.RoadmapHandler.Generate)
		protected.GET("/roadmaps", cfg.RoadmapHandler.List)
		protected.GET("/roadmaps/:id", cfg.RoadmapHandler.Get)
		protected.DELETE("/roadmaps/:id", cfg.RoadmapHandler.Delete)

		protected.PATCH("/milestones/:id/toggle", cfg.MilestoneHandler.Toggle)

		protected.GET("/stats", cfg.StatsHandler.Get)
	}

	return router
}
