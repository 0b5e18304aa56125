//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/trail"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

// StubAuthAdminConnector stands in for the platform's auth admin API in
// integration tests. It fabricates deterministic users and records every
// call for assertions.
type StubAuthAdminConnector struct {
	CreatedUsers    []accounts.AdminUser
	PasswordUpdates map[string]string
}

// NewStubAuthAdminConnector creates a StubAuthAdminConnector with empty call
// records.
func NewStubAuthAdminConnector() *StubAuthAdminConnector {
	return &StubAuthAdminConnector{
		PasswordUpdates: make(map[string]string),
	}
}

func (c *StubAuthAdminConnector) CreateUser(_ context.Context, email, _, role string) (*accounts.AdminUser, error) {
	user := accounts.AdminUser{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		Confirmed: true,
	}
	c.CreatedUsers = append(c.CreatedUsers, user)
	return &user, nil
}

func (c *StubAuthAdminConnector) UpdateUserPassword(_ context.Context, userID, password string) error {
	c.PasswordUpdates[userID] = password
	return nil
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	ScriptService    sqlexec.ScriptExecutionService
	MigrationService migrations.MigrationService
	SeedService      seeds.SeedService
	AccountService   accounts.AccountMaintenanceService
	AuditService     audit.AuditService

	// MigrationsDir is the temporary scripts directory the migration service
	// reads. Tests write their scripts here before calling Up or Status.
	MigrationsDir string
	// TrailDir is the temporary directory behind the audit trail store.
	TrailDir string
	// AuthAdmin records the auth admin API calls the account service made.
	AuthAdmin *StubAuthAdminConnector

	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := pkgTesting.SetupTestLogger(t)

	// Setup database
	dbContext := persistence.SetupTestDB(t, dbType)

	migrationsDir := t.TempDir()
	trailDir := t.TempDir()

	scriptService, err := NewScriptExecutionService(dbContext.Executor, logger)
	require.NoError(t, err, "Failed to create ScriptExecutionService")

	migrationService, err := NewMigrationService(dbContext.LedgerRepo, scriptService, migrationsDir, logger)
	require.NoError(t, err, "Failed to create MigrationService")

	seedService, err := NewSeedService(dbContext.SettingsRepo, logger)
	require.NoError(t, err, "Failed to create SeedService")

	authAdmin := NewStubAuthAdminConnector()
	accountService, err := NewAccountMaintenanceService(dbContext.ProfileRepo, authAdmin, logger)
	require.NoError(t, err, "Failed to create AccountMaintenanceService")

	trailStore, err := trail.NewFileTrailStore(trailDir)
	require.NoError(t, err, "Failed to create trail store")
	t.Cleanup(func() { _ = trailStore.Close() })

	auditService, err := NewAuditService(trailStore, dbContext.MirrorRepo, logger)
	require.NoError(t, err, "Failed to create AuditService")

	return &TestServices{
		ScriptService:    scriptService,
		MigrationService: migrationService,
		SeedService:      seedService,
		AccountService:   accountService,
		AuditService:     auditService,
		MigrationsDir:    migrationsDir,
		TrailDir:         trailDir,
		AuthAdmin:        authAdmin,
		DBContext:        dbContext,
	}
}
