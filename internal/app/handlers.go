package app

import (
	"gorm.io/gorm"

	redisclient "github.com/coursiva/coursiva-backend/internal/clients/redis"
	"github.com/coursiva/coursiva-backend/internal/handlers"
	"github.com/coursiva/coursiva-backend/internal/logger"
)

type Handlers struct {
	Access      *handlers.AccessHandler
	Enrollment  *handlers.EnrollmentHandler
	Healthcheck *handlers.HealthcheckHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, serviceset Services, cache redisclient.DecisionCache) Handlers {
	return Handlers{
		Access:      handlers.NewAccessHandler(log, serviceset.Access),
		Enrollment:  handlers.NewEnrollmentHandler(log, serviceset.Enrollment),
		Healthcheck: handlers.NewHealthcheckHandler(log, db, cache),
	}
}
