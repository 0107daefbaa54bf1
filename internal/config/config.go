// internal/config/config.go
//
// Environment-driven configuration. The hosted store address and its
// access key have no sane defaults; the process refuses to start
// without them rather than limping along half-configured.

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds every runtime knob the server reads.
type Config struct {
	StoreDriver    string // postgres (default), mysql or sqlite3
	StoreURL       string // hosted store base address / DSN
	StoreKey       string // hosted store access key
	Port           string
	LogLevel       string
	JWTSecret      string
	JWTExpiresDays int
	AuthHash       string // "legacy" or "bcrypt"
	ClientOrigin   string
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		StoreDriver:    getEnv("STORE_DRIVER", "postgres"),
		StoreURL:       os.Getenv("STORE_URL"),
		StoreKey:       os.Getenv("STORE_KEY"),
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiresDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
		AuthHash:       getEnv("AUTH_HASH", "legacy"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
	if cfg.StoreURL == "" {
		return Config{}, errors.New("config: STORE_URL is required")
	}
	if cfg.StoreKey == "" && cfg.StoreDriver != "sqlite3" {
		return Config{}, errors.New("config: STORE_KEY is required")
	}
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
