package commands

import (
	"fmt"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/trail"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// configFile is the value of the global --config flag, bound by
// RegisterGlobalFlags before any command runs.
var configFile string

// RegisterGlobalFlags attaches the flags shared by every command group to
// the root command.
func RegisterGlobalFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the config file (default configs/ops.yaml)")
}

// loadOpsConfig loads the CLI configuration, honouring the --config flag and
// SAMIA_OPS_ environment overrides. A .env file in the working directory is
// folded into the environment first so that credentials never live in the
// config file itself.
func loadOpsConfig() (*config.OpsConfig, error) {
	_ = godotenv.Load()

	cfg, err := config.InitializeOpsConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// connectDatabase validates the database settings and opens the gorm handle.
func connectDatabase(settings config.DatabaseSettings) (*gorm.DB, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// newScriptService wires the statement executor and script runner over the
// given connection.
func newScriptService(db *gorm.DB, loggerInstance logger.Logger) (sqlexec.ScriptExecutionService, error) {
	executor, err := persistence.NewGormStatementExecutor(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create statement executor: %w", err)
	}

	scriptService, err := app.NewScriptExecutionService(executor, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create script service: %w", err)
	}

	return scriptService, nil
}

// newAuditService wires the file trail store and, when mirroring is enabled,
// the admin audit table repository behind the audit service.
func newAuditService(cfg *config.OpsConfig, loggerInstance logger.Logger) (audit.AuditService, error) {
	trailStore, err := trail.NewFileTrailStore(cfg.Audit.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit trail: %w", err)
	}

	var mirrorRepo audit.MirrorRepository
	if cfg.Audit.MirrorToDB {
		db, err := connectDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}

		mirrorRepo, err = persistence.NewGormAuditLogRepository(db, loggerInstance)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit mirror repository: %w", err)
		}
	}

	auditService, err := app.NewAuditService(trailStore, mirrorRepo, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	return auditService, nil
}
