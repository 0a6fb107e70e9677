package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/coursiva/coursiva-backend/internal/clients/redis"
	"github.com/coursiva/coursiva-backend/internal/logger"
)

type HealthcheckHandler struct {
	log   *logger.Logger
	db    *gorm.DB
	cache redisclient.DecisionCache
}

func NewHealthcheckHandler(log *logger.Logger, db *gorm.DB, cache redisclient.DecisionCache) *HealthcheckHandler {
	return &HealthcheckHandler{
		log:   log.With("handler", "HealthcheckHandler"),
		db:    db,
		cache: cache,
	}
}

func (h *HealthcheckHandler) Healthz(c *gin.Context) {
	status := gin.H{"status": "ok"}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			status["postgres"] = "down"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["postgres"] = "up"
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			// Cache loss degrades to direct evaluation; still healthy.
			status["redis"] = "down"
		} else {
			status["redis"] = "up"
		}
	}

	c.JSON(http.StatusOK, status)
}
