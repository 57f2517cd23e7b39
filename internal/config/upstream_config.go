package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLEnvVar = "API_BASE_URL"
	apiTimeoutEnvVar = "API_TIMEOUT_SECONDS"
)

type Upstream struct{}

var _ UpstreamConfig = Upstream{}

// GetAPIBaseURL returns the backend API root without a trailing slash.
func (Upstream) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLEnvVar, "http://localhost:8000"), "/")
}

// GetAPITimeout bounds every backend call, scan uploads included.
func (Upstream) GetAPITimeout() time.Duration {
	seconds := GetEnvInt(apiTimeoutEnvVar, 30)
	if seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}
