package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrUnavailable is returned by every store operation when no connection was established at startup.
var ErrUnavailable = errors.New("database not connected")

// Options controls how the store is opened and probed.
type Options struct {
	MaxOpenConns int
	ProbeTimeout time.Duration
}

// Store owns the process-wide connection pool. A Store without a pool is a valid value: the
// process keeps running and every caller receives ErrUnavailable.
type Store struct {
	mu     sync.RWMutex
	db     *gorm.DB
	driver string
	logger zerolog.Logger
}

// NewStore wraps an already opened gorm handle. A nil handle yields a store in no-store mode.
func NewStore(db *gorm.DB, driver string, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		driver: driver,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Open builds the dialector, opens the pool and runs a single bounded connectivity probe.
// Failures never abort startup: they are logged and the store is returned disconnected.
func Open(ctx context.Context, dialector gorm.Dialector, driver string, opts Options, logger zerolog.Logger) *Store {
	store := NewStore(nil, driver, logger)
	if dialector == nil {
		store.logger.Warn().Msg("no database configured, running without store")
		return store
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               newGormLogger(store.logger),
	})
	if err != nil {
		store.logger.Error().Err(err).Msg("failed to open database, running without store")
		return store
	}

	if err := probe(ctx, db, opts); err != nil {
		store.logger.Error().Err(err).Msg("database probe failed, running without store")
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return store
	}

	store.db = db
	store.logger.Info().Str("driver", driver).Int("max_open_conns", opts.MaxOpenConns).Msg("database connected")
	return store
}

// newGormLogger routes gorm warnings through zerolog. Rejected logins and first-boot lookups miss
// rows routinely, so record-not-found is not reported.
func newGormLogger(logger zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(log.New(logger, "", 0), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func probe(ctx context.Context, db *gorm.DB, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql handle: %w", err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)

	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(probeCtx); err != nil {
		return fmt.Errorf("database connection timeout: %w", err)
	}

	var one int
	if err := db.WithContext(probeCtx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("database test query failed: %w", err)
	}

	return nil
}

// Conn returns the pool bound to ctx, or ErrUnavailable.
func (s *Store) Conn(ctx context.Context) (*gorm.DB, error) {
	if s == nil {
		return nil, ErrUnavailable
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrUnavailable
	}
	return s.db.WithContext(ctx), nil
}

// Available reports whether the store holds a live pool.
func (s *Store) Available() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// Status renders the connectivity flag used by the diagnostic endpoints.
func (s *Store) Status() string {
	if s.Available() {
		return "connected"
	}
	return "disconnected"
}

// Driver names the configured dialect.
func (s *Store) Driver() string {
	if s == nil {
		return ""
	}
	return s.driver
}

// Close releases the pool. The store is disconnected afterwards.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.logger.Info().Msg("database connection closed")
	return nil
}
