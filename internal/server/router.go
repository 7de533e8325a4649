package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/handlers"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	TrainingHandler *handlers.TrainingHandler
	UserHandler     *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.DELETE("/user", cfg.UserHandler.DeleteMe)
	// Games
	protected.GET("/games", cfg.TrainingHandler.ListGames)
	protected.POST("/games/:game/next-action", cfg.TrainingHandler.NextAction)
	protected.POST("/games/:game/complete", cfg.TrainingHandler.CompleteLevel)
	protected.GET("/games/:game/stats", cfg.TrainingHandler.Stats)
	protected.GET("/games/:game/history", cfg.TrainingHandler.History)
	protected.POST("/games/:game/trend", cfg.TrainingHandler.Trend)
	protected.POST("/games/:game/reset", cfg.TrainingHandler.Reset)

	return router
}
