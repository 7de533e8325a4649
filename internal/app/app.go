package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/db"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/games"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/handlers"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/middleware"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/repos"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/server"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/services"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/store"
)

type App struct {
	Log    *logger.Logger
	DB     *gorm.DB
	KV     store.KV
	Router *gin.Engine
	Cfg    Config
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	if cfg.GamesTuningPath != "" {
		games.ApplyTuningFile(cfg.GamesTuningPath, log)
	}

	dbService, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("db automigrate: %w", err)
	}
	theDB := dbService.DB()

	var kv store.KV
	if os.Getenv("REDIS_ADDR") != "" {
		kv, err = store.NewRedisKV(log)
		if err != nil {
			log.Warn("Redis init failed, falling back to in-memory store", "error", err)
			kv = store.NewMemoryKV()
		}
	} else {
		kv = store.NewMemoryKV()
	}

	// Repos
	log.Info("Setting up Repos...")
	userRepo := repos.NewUserRepo(theDB, log)
	playEventRepo := repos.NewPlayEventRepo(theDB, log)

	// Services
	log.Info("Setting up Services...")
	authService := services.NewAuthService(theDB, log, userRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	userService := services.NewUserService(theDB, log, kv, userRepo, playEventRepo)
	trainingService := services.NewTrainingService(log, kv, playEventRepo, cfg.BanditSeed)

	// Handlers
	log.Info("Setting up Handlers...")
	authHandler := handlers.NewAuthHandler(log, authService)
	userHandler := handlers.NewUserHandler(log, userService)
	trainingHandler := handlers.NewTrainingHandler(log, trainingService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up Router...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		TrainingHandler: trainingHandler,
		UserHandler:     userHandler,
	})

	return &App{
		Log:    log,
		DB:     theDB,
		KV:     kv,
		Router: router,
		Cfg:    cfg,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
