package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
)

type gormStatementExecutor struct {
	db *gorm.DB
}

// NewGormStatementExecutor creates a new GORM-based StatementExecutor
// implementation. Each statement runs in its own implicit transaction, which
// is what lets script runs continue past a failed statement.
func NewGormStatementExecutor(db *gorm.DB) (sqlexec.StatementExecutor, error) {
	return &gormStatementExecutor{db: db}, nil
}

func (e *gormStatementExecutor) Exec(ctx context.Context, statement string) error {
	if err := e.db.WithContext(ctx).Exec(statement).Error; err != nil {
		return fmt.Errorf("statement execution failed: %w", err)
	}
	return nil
}
