package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLiteDSN is the database file used when no DSN is configured.
const DefaultSQLiteDSN = "data.sqlite"

const defaultBatchSize = 500

// Readers must not fail with SQLITE_BUSY while an import commits.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

type GormStorage struct {
	db        *gorm.DB
	pool      *pgxpool.Pool // only set for the postgrespool driver
	driver    string
	batchSize int
}

// NewGormStorage opens a gorm handle for driver. The returned storage owns the
// handle and its connection pool until Close.
func NewGormStorage(ctx context.Context, driver, dsn string) (*GormStorage, error) {
	var dialector gorm.Dialector
	var pool *pgxpool.Pool

	switch driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(dsn))
	case "postgres":
		dialector = postgres.Open(dsn)
	case "postgrespool":
		cfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse pool config: %w", err)
		}
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open pool: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)})
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	if driver == "sqlite" && isSQLiteMemory(dsn) {
		// Every connection to :memory: is a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return &GormStorage{db: db, pool: pool, driver: driver, batchSize: defaultBatchSize}, nil
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

func isSQLiteMemory(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") ||
		strings.HasPrefix(dsn, "file::memory:") ||
		strings.Contains(dsn, "mode=memory")
}

// Migrate creates the prices table and its indexes when missing.
func (s *GormStorage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&PriceRow{})
}

func (s *GormStorage) ReplaceAll(ctx context.Context, rows []PriceRow) (int, error) {
	batch := make([]PriceRow, len(rows))
	copy(batch, rows)
	for i := range batch {
		batch[i].ID = 0
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&PriceRow{}).Error; err != nil {
			return fmt.Errorf("delete prices: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(batch, s.batchSize).Error; err != nil {
			return fmt.Errorf("insert prices: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(batch), nil
}

// ListGrades folds case in Go rather than SQL: SQLite's LOWER only folds
// ASCII, and every backend must match grades the same way.
func (s *GormStorage) ListGrades(ctx context.Context, query string) ([]string, error) {
	var all []string
	err := s.db.WithContext(ctx).Model(&PriceRow{}).
		Distinct().
		Order("grade").
		Pluck("grade", &all).Error
	if err != nil {
		return nil, err
	}
	// Postgres may order by a locale collation; keep byte order everywhere.
	sort.Strings(all)
	return filterGrades(all, query), nil
}

// filterGrades keeps the grades containing query, case-insensitively. The
// input order is preserved.
func filterGrades(grades []string, query string) []string {
	q := strings.ToLower(query)
	out := make([]string, 0, len(grades))
	for _, g := range grades {
		if q == "" || strings.Contains(strings.ToLower(g), q) {
			out = append(out, g)
		}
	}
	return out
}

func (s *GormStorage) GetByGrade(ctx context.Context, grade string) ([]PriceRow, error) {
	rows := make([]PriceRow, 0)
	result := s.db.WithContext(ctx).
		Where("grade = ?", grade).
		Order("std").
		Order("id").
		Find(&rows)
	return rows, result.Error
}

// PoolStats reports connection pool usage for the metrics exporter.
func (s *GormStorage) PoolStats() (PoolStats, error) {
	if s.pool != nil {
		st := s.pool.Stat()
		return PoolStats{
			Total:    int64(st.TotalConns()),
			Idle:     int64(st.IdleConns()),
			Acquired: int64(st.AcquiredConns()),
			Acquires: st.AcquireCount(),
		}, nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return PoolStats{}, err
	}
	st := sqlDB.Stats()
	return PoolStats{
		Total:    int64(st.OpenConnections),
		Idle:     int64(st.Idle),
		Acquired: int64(st.InUse),
		Acquires: st.WaitCount,
	}, nil
}

// Driver is the configured driver name, used as a metrics label.
func (s *GormStorage) Driver() string { return s.driver }

// Close & Ping

func (s *GormStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

func (s *GormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
