// Package config loads server configuration from the environment, with an
// optional .env file for local development. Values are read once at startup;
// the API credential itself is handled by the auth package.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the non-secret runtime configuration for studio-web.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// MaxUploadBytes caps the size of a single image upload.
	MaxUploadBytes int64
	// SessionTTLMinutes is how long an idle workspace survives before the
	// store may evict it.
	SessionTTLMinutes int
}

const (
	defaultPort           = "8080"
	defaultMaxUploadBytes = 12 << 20 // 12 MiB, comfortably above phone camera JPEGs
	defaultSessionTTL     = 120
)

// Load reads configuration from the environment. A .env or .env.local file is
// honoured when present; absence is not an error. godotenv never overrides
// variables already set, so .env.local is loaded first to win over .env, and
// the real environment wins over both.
func Load() Config {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	c := Config{
		Port:              getenv("STUDIO_PORT", defaultPort),
		MaxUploadBytes:    getenvInt64("STUDIO_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		SessionTTLMinutes: int(getenvInt64("STUDIO_SESSION_TTL_MINUTES", defaultSessionTTL)),
	}

	log.Debug().
		Str("port", c.Port).
		Int64("maxUploadBytes", c.MaxUploadBytes).
		Int("sessionTTLMinutes", c.SessionTTLMinutes).
		Msg("Configuration loaded")

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Warn().Str("var", k).Str("value", v).Msg("Ignoring invalid numeric environment value")
		return def
	}
	return n
}
