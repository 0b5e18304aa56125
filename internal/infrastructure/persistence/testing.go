//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence/models"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB           *gorm.DB
	LedgerRepo   migrations.LedgerRepository
	SettingsRepo seeds.SettingsRepository
	ProfileRepo  accounts.ProfileRepository
	MirrorRepo   audit.MirrorRepository
	Executor     sqlexec.StatementExecutor
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = db.AutoMigrate(
		&models.MigrationRecordModel{},
		&models.SettingModel{},
		&models.ProfileModel{},
		&models.AuditLogModel{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	logger := pkgTesting.SetupTestLogger(t)

	ledgerRepo, err := NewGormLedgerRepository(db, logger)
	require.NoError(t, err, "Failed to create ledger repository")

	settingsRepo, err := NewGormSettingsRepository(db, logger)
	require.NoError(t, err, "Failed to create settings repository")

	profileRepo, err := NewGormProfileRepository(db, logger)
	require.NoError(t, err, "Failed to create profile repository")

	mirrorRepo, err := NewGormAuditLogRepository(db, logger)
	require.NoError(t, err, "Failed to create audit log repository")

	executor, err := NewGormStatementExecutor(db)
	require.NoError(t, err, "Failed to create statement executor")

	return &TestContext{
		DB:           db,
		LedgerRepo:   ledgerRepo,
		SettingsRepo: settingsRepo,
		ProfileRepo:  profileRepo,
		MirrorRepo:   mirrorRepo,
		Executor:     executor,
	}
}

// CreateTestProfile creates a test profile with default values
func CreateTestProfile(t *testing.T, email, role string) *accounts.Profile {
	t.Helper()

	now := time.Now().UTC()
	return &accounts.Profile{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: "Test Profile",
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTestRecord creates a test ledger record with default values
func CreateTestRecord(t *testing.T, name string) *migrations.Record {
	t.Helper()

	return &migrations.Record{
		Name:       name,
		Checksum:   migrations.Checksum([]byte(name)),
		Statements: 3,
		Failed:     0,
		AppliedAt:  time.Now().UTC(),
	}
}

// CreateTestEntry creates a test settings entry with default values
func CreateTestEntry(t *testing.T, key, category string) *seeds.Entry {
	t.Helper()

	return &seeds.Entry{
		Key:      key,
		Value:    "value-" + key,
		Category: category,
	}
}

// CreateTestEvent creates a test audit event with default values
func CreateTestEvent(t *testing.T, category, action string) *audit.Event {
	t.Helper()

	return &audit.Event{
		ID:        uuid.NewString(),
		Category:  category,
		Action:    action,
		Actor:     "tester",
		Severity:  audit.SeverityInfo,
		Message:   "test event",
		Timestamp: time.Now().UTC(),
	}
}
