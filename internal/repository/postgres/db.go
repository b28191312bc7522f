package postgres

import (
	"context"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"medverify/internal/config"
	"medverify/internal/domain"
)

// NewDB creates a new PostgreSQL connection pool.
func NewDB(ctx context.Context, cfg *config.DBConfig) (*sqlx.DB, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// LazyDB owns the process-wide connection pool. The pool is opened on first
// use; a failed attempt is retried on the next call. Safe for concurrent use.
type LazyDB struct {
	cfg     *config.DBConfig
	connect func(ctx context.Context, cfg *config.DBConfig) (*sqlx.DB, error)

	mu sync.Mutex
	db *sqlx.DB
}

// NewLazyDB creates a LazyDB. No connection is made until Get is called.
func NewLazyDB(cfg *config.DBConfig) *LazyDB {
	return &LazyDB{cfg: cfg, connect: NewDB}
}

// Get returns the pool, connecting if needed. Connection failures wrap
// domain.ErrDatabaseUnavailable.
func (l *LazyDB) Get(ctx context.Context) (*sqlx.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}
	db, err := l.connect(ctx, l.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err)
	}
	l.db = db
	return db, nil
}

// Ping connects if needed and checks the connection is alive.
func (l *LazyDB) Ping(ctx context.Context) error {
	db, err := l.Get(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err)
	}
	return nil
}

// Close releases the pool if one was opened. Get may reconnect afterwards.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
