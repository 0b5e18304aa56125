package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence/models"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (accounts.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) ListMissingPasswordHash(ctx context.Context) ([]*accounts.Profile, error) {
	var modelList []*models.ProfileModel
	err := r.db.WithContext(ctx).
		Where("password_hash IS NULL OR password_hash = ''").
		Order("email asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles missing a password hash: %w", err)
	}

	profiles := make([]*accounts.Profile, len(modelList))
	for i, model := range modelList {
		profiles[i] = model.ToDomain()
	}
	return profiles, nil
}

func (r *gormProfileRepository) GetByEmail(ctx context.Context, email string) (*accounts.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accounts.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) Create(ctx context.Context, profile *accounts.Profile) error {
	// Validate domain entity (business rules)
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)
	if model.CreatedAt.IsZero() {
		now := time.Now().UTC()
		model.CreatedAt = now
		model.UpdatedAt = now
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.logger.Info("Created profile with id ", profile.ID)
	return nil
}

func (r *gormProfileRepository) UpdatePasswordHash(ctx context.Context, profileID, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update password hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return accounts.ErrProfileNotFound
	}

	r.logger.Info("Updated password hash for profile ", profileID)
	return nil
}
