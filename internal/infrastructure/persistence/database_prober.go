package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence/models"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
)

// ledgerPinger abstracts the database calls Probe makes so that tests can
// inject a fake without standing up a real database.
type ledgerPinger interface {
	Ping(ctx context.Context) error
	CountLedger(ctx context.Context) (int64, error)
	Close() error
}

// DatabaseProber checks that the operations database answers and carries the
// migration ledger. The connection is opened lazily per probe; nothing
// connects at construction time.
type DatabaseProber struct {
	settings config.DatabaseSettings
	cb       *gobreaker.CircuitBreaker
	connect  func(settings config.DatabaseSettings) (ledgerPinger, error)
}

// NewDatabaseProber creates a DatabaseProber wrapped in the given circuit
// breaker.
func NewDatabaseProber(settings config.DatabaseSettings, cb *gobreaker.CircuitBreaker) *DatabaseProber {
	return &DatabaseProber{
		settings: settings,
		cb:       cb,
		connect:  realLedgerConnect,
	}
}

// Probe pings the database and verifies the ops_migrations ledger exists.
// Persistent failures trip the breaker after three consecutive errors.
func (p *DatabaseProber) Probe(ctx context.Context) health.ProbeResult {
	start := time.Now()

	_, err := p.cb.Execute(func() (any, error) {
		db, err := p.connect(p.settings)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()

		if err := db.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping: %w", err)
		}

		if _, err := db.CountLedger(ctx); err != nil {
			return nil, fmt.Errorf("migration ledger not found: %w", err)
		}

		return nil, nil
	})

	latency := time.Since(start).Milliseconds()

	if err != nil {
		errMsg := err.Error()
		if errors.Is(err, gobreaker.ErrOpenState) {
			errMsg = "circuit open"
		}
		return health.ProbeResult{
			Name:      health.ProbePostgres,
			OK:        false,
			LatencyMs: latency,
			Error:     errMsg,
		}
	}

	return health.ProbeResult{
		Name:      health.ProbePostgres,
		OK:        true,
		LatencyMs: latency,
	}
}

type gormLedgerPinger struct {
	db *gorm.DB
}

func (p *gormLedgerPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *gormLedgerPinger) CountLedger(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.MigrationRecordModel{}).Count(&count).Error
	return count, err
}

func (p *gormLedgerPinger) Close() error {
	return CloseDB(p.db)
}

// realLedgerConnect opens a gorm connection using the provided settings.
func realLedgerConnect(settings config.DatabaseSettings) (ledgerPinger, error) {
	db, err := NewDBConnection(settings)
	if err != nil {
		return nil, err
	}
	return &gormLedgerPinger{db: db}, nil
}
