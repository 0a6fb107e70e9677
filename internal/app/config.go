package app

import (
	"github.com/coursiva/coursiva-backend/internal/logger"
	"github.com/coursiva/coursiva-backend/internal/utils"
)

type Config struct {
	JWTSecretKey string
	HTTPAddr     string
	CacheEnabled bool
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	httpPort := utils.GetEnv("PORT", "8080", log)
	cacheEnabled := utils.GetEnvAsBool("CACHE_ENABLED", true, log)
	return Config{
		JWTSecretKey: jwtSecretKey,
		HTTPAddr:     ":" + httpPort,
		CacheEnabled: cacheEnabled,
	}
}
