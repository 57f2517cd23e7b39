package config

import "time"

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "session")
}

func (Security) GetSessionMaxAge() time.Duration {
	return 7 * 24 * time.Hour
}

// GetAuthRateLimit is the sustained login/signup rate per client IP, in requests per second.
func (Security) GetAuthRateLimit() float64 {
	return GetEnvFloat("AUTH_RATE_LIMIT", 1)
}

func (Security) GetAuthRateBurst() int {
	return GetEnvInt("AUTH_RATE_BURST", 5)
}
