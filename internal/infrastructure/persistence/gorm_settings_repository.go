package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence/models"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

type gormSettingsRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSettingsRepository creates a new GORM-based SettingsRepository implementation
func NewGormSettingsRepository(db *gorm.DB, logger logger.Logger) (seeds.SettingsRepository, error) {
	return &gormSettingsRepository{
		db:     db,
		logger: logger,
	}, nil
}

// EnsureTable creates the app_settings table when it does not exist yet so
// seeding works against a freshly provisioned database before the migration
// that formalizes the table has run.
func (r *gormSettingsRepository) EnsureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.SettingModel{}); err != nil {
		return fmt.Errorf("failed to ensure app_settings table: %w", err)
	}
	return nil
}

func (r *gormSettingsRepository) Get(ctx context.Context, key string) (*seeds.Entry, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, seeds.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch setting: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSettingsRepository) List(ctx context.Context, category string) ([]seeds.Entry, error) {
	var modelList []*models.SettingModel
	dbQuery := r.db.WithContext(ctx).Model(&models.SettingModel{})

	if category != "" {
		dbQuery = dbQuery.Where("category = ?", category)
	}

	if err := dbQuery.Order("category asc, key asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	entries := make([]seeds.Entry, len(modelList))
	for i, model := range modelList {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

func (r *gormSettingsRepository) Create(ctx context.Context, entry *seeds.Entry) error {
	// Validate domain entity (business rules)
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	now := time.Now().UTC()
	model := &models.SettingModel{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	model.FromDomain(entry)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create setting: %w", err)
	}

	r.logger.Info("Created setting ", entry.Key)
	return nil
}

func (r *gormSettingsRepository) Update(ctx context.Context, entry *seeds.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SettingModel{}
	model.FromDomain(entry)

	result := r.db.WithContext(ctx).Model(&models.SettingModel{}).
		Where("key = ?", entry.Key).
		Updates(map[string]interface{}{
			"value":      model.Value,
			"category":   model.Category,
			"sensitive":  model.Sensitive,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return seeds.ErrNotFound
	}

	r.logger.Info("Updated setting ", entry.Key)
	return nil
}
