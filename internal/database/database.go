package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/runtimeconfig"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

var (
	ErrProviderNotSQL = errors.New("database: storage provider is not backed by sql")
	ErrDSNRequired    = errors.New("database: dsn is required")
)

// Open connects to the database selected by cfg and verifies the connection.
// When cfg.Debug is set every query is logged at debug level.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig, logger interfaces.Logger) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case runtimeconfig.StorageSQLite:
		sqlDB, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("database: open sqlite: %w", err)
		}
		// sqlite serialises writers; one connection keeps in-memory DSNs coherent.
		sqlDB.SetMaxOpenConns(1)
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	case runtimeconfig.StoragePostgres:
		sqlDB, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("database: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrProviderNotSQL, cfg.Provider)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", cfg.Provider, err)
	}
	if cfg.Debug {
		db.AddQueryHook(&queryLogger{logger: logging.WithFields(nonNil(logger), map[string]any{"provider": cfg.Provider})})
	}
	return db, nil
}

func nonNil(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}

type queryLogger struct {
	logger interfaces.Logger
}

var _ bun.QueryHook = (*queryLogger)(nil)

func (h *queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	args := []any{"query", event.Query, "duration_ms", time.Since(event.StartTime).Milliseconds()}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.logger.Warn("database.query.failed", append(args, "error", event.Err)...)
		return
	}
	h.logger.Debug("database.query", args...)
}
