//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/policies"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/provision"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/release"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
)

// MockStatementExecutor is a mock implementation of StatementExecutor
type MockStatementExecutor struct {
	mock.Mock
}

func (m *MockStatementExecutor) Exec(ctx context.Context, statement string) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

// MockScriptExecutionService is a mock implementation of ScriptExecutionService
type MockScriptExecutionService struct {
	mock.Mock
}

func (m *MockScriptExecutionService) ExecuteScript(ctx context.Context, name, script string, opts sqlexec.ExecOptions) (*sqlexec.ScriptResult, error) {
	args := m.Called(ctx, name, script, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqlexec.ScriptResult), args.Error(1)
}

func (m *MockScriptExecutionService) ExecuteFile(ctx context.Context, path string, opts sqlexec.ExecOptions) (*sqlexec.ScriptResult, error) {
	args := m.Called(ctx, path, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqlexec.ScriptResult), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) EnsureLedger(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerRepository) List(ctx context.Context) ([]*migrations.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*migrations.Record), args.Error(1)
}

func (m *MockLedgerRepository) Get(ctx context.Context, name string) (*migrations.Record, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*migrations.Record), args.Error(1)
}

func (m *MockLedgerRepository) Create(ctx context.Context, record *migrations.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockPolicyReader is a mock implementation of PolicyReader
type MockPolicyReader struct {
	mock.Mock
}

func (m *MockPolicyReader) ListPolicies(ctx context.Context, table string) ([]*policies.AppliedPolicy, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policies.AppliedPolicy), args.Error(1)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) EnsureTable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (*seeds.Entry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seeds.Entry), args.Error(1)
}

func (m *MockSettingsRepository) List(ctx context.Context, category string) ([]seeds.Entry, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seeds.Entry), args.Error(1)
}

func (m *MockSettingsRepository) Create(ctx context.Context, entry *seeds.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSettingsRepository) Update(ctx context.Context, entry *seeds.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) ListMissingPasswordHash(ctx context.Context) ([]*accounts.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounts.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*accounts.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *accounts.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdatePasswordHash(ctx context.Context, profileID, hash string) error {
	args := m.Called(ctx, profileID, hash)
	return args.Error(0)
}

// MockAuthAdminConnector is a mock implementation of AuthAdminConnector
type MockAuthAdminConnector struct {
	mock.Mock
}

func (m *MockAuthAdminConnector) CreateUser(ctx context.Context, email, password, role string) (*accounts.AdminUser, error) {
	args := m.Called(ctx, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.AdminUser), args.Error(1)
}

func (m *MockAuthAdminConnector) UpdateUserPassword(ctx context.Context, userID, password string) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}

// MockTrailStore is a mock implementation of TrailStore
type MockTrailStore struct {
	mock.Mock
}

func (m *MockTrailStore) Append(event *audit.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockTrailStore) Scan(category string) ([]*audit.Event, int, error) {
	args := m.Called(category)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*audit.Event), args.Int(1), args.Error(2)
}

func (m *MockTrailStore) Rotate(category string) error {
	args := m.Called(category)
	return args.Error(0)
}

// MockMirrorRepository is a mock implementation of MirrorRepository
type MockMirrorRepository struct {
	mock.Mock
}

func (m *MockMirrorRepository) Create(ctx context.Context, event *audit.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSchemaReader is a mock implementation of SchemaReader
type MockSchemaReader struct {
	mock.Mock
}

func (m *MockSchemaReader) ReadTables(ctx context.Context, schema string) ([]drift.TableSpec, error) {
	args := m.Called(ctx, schema)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drift.TableSpec), args.Error(1)
}

// MockDNSConnector is a mock implementation of DNSConnector
type MockDNSConnector struct {
	mock.Mock
}

func (m *MockDNSConnector) EnsureRecords(ctx context.Context, records []provision.DNSRecord) ([]provision.EnsureResult, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provision.EnsureResult), args.Error(1)
}

func (m *MockDNSConnector) VerifyToken(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEmailConnector is a mock implementation of EmailConnector
type MockEmailConnector struct {
	mock.Mock
}

func (m *MockEmailConnector) AuthenticateDomain(ctx context.Context, domain string) (*provision.DomainAuth, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provision.DomainAuth), args.Error(1)
}

func (m *MockEmailConnector) ValidateDomain(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmailConnector) EnsureSender(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}

// MockBuilder is a mock implementation of Builder
type MockBuilder struct {
	mock.Mock
}

func (m *MockBuilder) Build(ctx context.Context, spec release.BuildSpec) (*release.BuildResult, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*release.BuildResult), args.Error(1)
}
