package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port      string
	DBDriver  string
	DBDSN     string
	LogLevel  string
	LogFormat string

	// MaxUploadBytes bounds the multipart body accepted by /api/upload.
	MaxUploadBytes int64
}

const defaultMaxUploadMB = 32

// FromEnv builds a Config from environment variables, with sane defaults.
func FromEnv() Config {
	cfg := Config{
		Port:           getenv("PORT", "3000"),
		DBDriver:       getenv("PRICELOOKUP_DB_DRIVER", "sqlite"),
		DBDSN:          getenv("PRICELOOKUP_DB_DSN", "data.sqlite"),
		LogLevel:       getenv("PRICELOOKUP_LOG_LEVEL", "info"),
		LogFormat:      getenv("PRICELOOKUP_LOG_FORMAT", "json"),
		MaxUploadBytes: defaultMaxUploadMB << 20,
	}
	if raw := os.Getenv("PRICELOOKUP_MAX_UPLOAD_MB"); raw != "" {
		if mb, err := strconv.ParseInt(raw, 10, 64); err == nil && mb > 0 {
			cfg.MaxUploadBytes = mb << 20
		}
	}
	return cfg
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
