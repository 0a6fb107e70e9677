package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/coursiva/coursiva-backend/internal/middleware"
)

func wireRouter(handlerset Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	router.GET("/healthz", handlerset.Healthcheck.Healthz)

	api := router.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.GET("/access/:contentType/:contentID", handlerset.Access.CheckAccess)
		api.GET("/content/accessible", handlerset.Access.ListAccessible)
		api.POST("/enrollments", handlerset.Enrollment.Enroll)
	}

	return router
}
