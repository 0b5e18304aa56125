//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"

	"github.com/stretchr/testify/mock"
)

// MockDoctorService is a mock implementation of DoctorService
type MockDoctorService struct {
	mock.Mock
}

func (m *MockDoctorService) Run(ctx context.Context) (*health.CheckupResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*health.CheckupResult), args.Error(1)
}

// MockMigrationService is a mock implementation of MigrationService
type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) Up(ctx context.Context, opts sqlexec.ExecOptions) ([]*sqlexec.ScriptResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sqlexec.ScriptResult), args.Error(1)
}

func (m *MockMigrationService) Status(ctx context.Context) ([]*migrations.ScriptStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*migrations.ScriptStatus), args.Error(1)
}

func (m *MockMigrationService) MarkApplied(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockDriftService is a mock implementation of DriftService
type MockDriftService struct {
	mock.Mock
}

func (m *MockDriftService) Check(ctx context.Context) (*drift.Drift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drift.Drift), args.Error(1)
}

func (m *MockDriftService) Dump(ctx context.Context) ([]drift.TableSpec, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]drift.TableSpec), args.Error(1)
}

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Log(ctx context.Context, event *audit.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditService) Report(ctx context.Context, category string, since, until time.Time) (*audit.Report, error) {
	args := m.Called(ctx, category, since, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Report), args.Error(1)
}

func (m *MockAuditService) Rotate(category string) error {
	args := m.Called(category)
	return args.Error(0)
}

// MockSeedService is a mock implementation of SeedService
type MockSeedService struct {
	mock.Mock
}

func (m *MockSeedService) Seed(ctx context.Context, entries []seeds.Entry, overwrite bool) (*seeds.SeedResult, error) {
	args := m.Called(ctx, entries, overwrite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seeds.SeedResult), args.Error(1)
}

func (m *MockSeedService) List(ctx context.Context, category string) ([]seeds.Entry, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seeds.Entry), args.Error(1)
}
