package config

import (
	"time"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CorsConfig
	UpstreamConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetLogFormat() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type UpstreamConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type SecurityConfig interface {
	GetSessionCookieName() string
	GetSessionMaxAge() time.Duration
	GetAuthRateLimit() float64
	GetAuthRateBurst() int
}

type mainConfig struct {
	EnvVars
	Cors
	Upstream
	Security
}

// New loads .env files (missing files are ignored) and returns a Config
// that reads the process environment on every call.
func New() Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
	return mainConfig{}
}
