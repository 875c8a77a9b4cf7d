package config

import (
	"fmt"
	"os"
	"time"
)

const (
	portEnvVar        = "PORT"
	appNameVar        = "APP_NAME"
	envVar            = "ENV"
	backendURLVar     = "BACKEND_URL"
	sessionTTLVar     = "SESSION_TTL"
	defaultAppName    = "Scheduling Admin Portal"
	defaultBackend    = "http://localhost:8000"
	defaultSessionTTL = 12 * time.Hour
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type BackendConfig interface {
	GetBackendURL() string
}

type SessionConfig interface {
	GetSessionTTL() time.Duration
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, defaultAppName)
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(envVar)
	if env == "" {
		return "DEV"
	}
	return env
}

type Backend struct{}

var _ BackendConfig = Backend{}

// GetBackendURL returns the base URL of the scheduling backend that owns
// all business logic. Every REST call and the OAuth login navigation
// target both live under it.
func (Backend) GetBackendURL() string {
	return GetEnv(backendURLVar, defaultBackend)
}

type Sessions struct{}

var _ SessionConfig = Sessions{}

// GetSessionTTL returns the max age of the browser session cookie.
func (Sessions) GetSessionTTL() time.Duration {
	raw := os.Getenv(sessionTTLVar)
	if raw == "" {
		return defaultSessionTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return defaultSessionTTL
	}
	return ttl
}

// GetEnv reads an environment variable with a fallback default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
