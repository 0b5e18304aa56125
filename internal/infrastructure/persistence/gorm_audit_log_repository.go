package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence/models"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

type gormAuditLogRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAuditLogRepository creates a new GORM-based MirrorRepository implementation
func NewGormAuditLogRepository(db *gorm.DB, logger logger.Logger) (audit.MirrorRepository, error) {
	return &gormAuditLogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAuditLogRepository) Create(ctx context.Context, event *audit.Event) error {
	// Validate domain entity (business rules)
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AuditLogModel{}
	if err := model.FromDomain(event); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to mirror audit event: %w", err)
	}

	return nil
}
