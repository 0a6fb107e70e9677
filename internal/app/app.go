package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/coursiva/coursiva-backend/internal/clients/redis"
	"github.com/coursiva/coursiva-backend/internal/db"
	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/middleware"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Cache    redisclient.DecisionCache
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

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	// Cache loss never blocks decisions, so a failed redis init degrades
	// the engine to direct evaluation instead of aborting startup.
	var cache redisclient.DecisionCache
	if cfg.CacheEnabled {
		cache, err = redisclient.NewDecisionCache(log)
		if err != nil {
			log.Warn("Decision cache unavailable, falling back to direct evaluation", "error", err)
			cache = nil
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, reposet, cache)
	handlerset := wireHandlers(log, theDB, serviceset, cache)
	auth := middleware.NewAuthMiddleware(log, cfg.JWTSecretKey)
	router := wireRouter(handlerset, auth)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Cache:    cache,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
