package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence/models"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormLedgerRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormLedgerRepository creates a new GORM-based LedgerRepository implementation
func NewGormLedgerRepository(db *gorm.DB, logger logger.Logger) (migrations.LedgerRepository, error) {
	return &gormLedgerRepository{
		db:     db,
		logger: logger,
	}, nil
}

// EnsureLedger creates the ops_migrations table when it does not exist yet.
// The ledger is the one table the toolkit owns outright, so creating it here
// rather than through a migration script avoids the bootstrap circle.
func (r *gormLedgerRepository) EnsureLedger(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.MigrationRecordModel{}); err != nil {
		return fmt.Errorf("failed to ensure migration ledger: %w", err)
	}
	return nil
}

func (r *gormLedgerRepository) List(ctx context.Context) ([]*migrations.Record, error) {
	var modelList []*models.MigrationRecordModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ledger records: %w", err)
	}

	records := make([]*migrations.Record, len(modelList))
	for i, model := range modelList {
		records[i] = model.ToDomain()
	}
	return records, nil
}

func (r *gormLedgerRepository) Get(ctx context.Context, name string) (*migrations.Record, error) {
	var model models.MigrationRecordModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, migrations.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch ledger record: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormLedgerRepository) Create(ctx context.Context, record *migrations.Record) error {
	model := &models.MigrationRecordModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ledger record: %w", err)
	}

	r.logger.Info("Recorded migration ", record.Name, " in the ledger")
	return nil
}
