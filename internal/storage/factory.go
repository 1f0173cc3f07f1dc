package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Config controls how the storage backend is opened.
type Config struct {
	Driver string
	DSN    string
	Logger *zap.Logger
}

// PoolStats is a point-in-time view of a backend's connection pool.
type PoolStats struct {
	Total    int64
	Idle     int64
	Acquired int64
	Acquires int64
}

// PoolReporter is implemented by backends that hold a connection pool.
type PoolReporter interface {
	Driver() string
	PoolStats() (PoolStats, error)
}

// Open constructs a Storage based on the given configuration and makes sure
// the prices schema exists.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	drv := cfg.Driver
	if drv == "" {
		drv = "sqlite"
	}
	switch drv {
	case "memory":
		log.Info("storage: using in-memory backend")
		return NewMemory(), nil

	case "sqlite", "postgres", "postgrespool":
		log.Info("storage: using gorm backend", zap.String("driver", drv))
		st, err := NewGormStorage(ctx, drv, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("storage migrate: %w", err)
		}
		return st, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", drv)
	}
}
