//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

func okResult(name string, total int) *sqlexec.ScriptResult {
	return &sqlexec.ScriptResult{Name: name, Total: total, Succeeded: total}
}

func TestMigrationService_Up_AppliesPendingInOrder(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0002_content.sql": "CREATE TABLE services (id int);",
		"0001_core.sql":    "CREATE TABLE profiles (id int);",
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)
	mockLedger.On("List", mock.Anything).Return([]*migrations.Record{}, nil)

	var executed []string
	mockRunner.On("ExecuteScript", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { executed = append(executed, args.String(1)) }).
		Return(okResult("x", 1), nil).Times(2)
	mockLedger.On("Create", mock.Anything, mock.Anything).Return(nil).Times(2)

	results, err := service.Up(context.Background(), sqlexec.ExecOptions{})
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Equal(t, []string{"0001_core.sql", "0002_content.sql"}, executed)
	mockLedger.AssertExpectations(t)
	mockRunner.AssertExpectations(t)
}

func TestMigrationService_Up_SkipsAppliedAndDrifted(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	appliedSQL := "CREATE TABLE profiles (id int);"
	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0001_core.sql":    appliedSQL,
		"0002_changed.sql": "CREATE TABLE services (id int);",
		"0003_new.sql":     "CREATE TABLE bookings (id int);",
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)
	mockLedger.On("List", mock.Anything).Return([]*migrations.Record{
		{Name: "0001_core.sql", Checksum: migrations.Checksum([]byte(appliedSQL))},
		{Name: "0002_changed.sql", Checksum: migrations.Checksum([]byte("the old contents"))},
	}, nil)

	// Only the genuinely new script runs; the drifted one is warned about and
	// left alone.
	mockRunner.On("ExecuteScript", mock.Anything, "0003_new.sql", mock.Anything, mock.Anything).
		Return(okResult("0003_new.sql", 1), nil)
	mockLedger.On("Create", mock.Anything, mock.MatchedBy(func(r *migrations.Record) bool {
		return r.Name == "0003_new.sql"
	})).Return(nil)

	results, err := service.Up(context.Background(), sqlexec.ExecOptions{})
	require.NoError(t, err)

	assert.Len(t, results, 1)
	mockRunner.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestMigrationService_Up_DryRunRecordsNothing(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0001_core.sql": "CREATE TABLE profiles (id int);",
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)
	mockLedger.On("List", mock.Anything).Return([]*migrations.Record{}, nil)
	mockRunner.On("ExecuteScript", mock.Anything, mock.Anything, mock.Anything, sqlexec.ExecOptions{DryRun: true}).
		Return(okResult("0001_core.sql", 1), nil)

	results, err := service.Up(context.Background(), sqlexec.ExecOptions{DryRun: true})
	require.NoError(t, err)

	assert.Len(t, results, 1)
	mockLedger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMigrationService_Up_StopOnErrorAbortsAfterRecording(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0001_bad.sql":  "CREATE TABLE broken;",
		"0002_good.sql": "CREATE TABLE services (id int);",
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	failed := &sqlexec.ScriptResult{
		Name:  "0001_bad.sql",
		Total: 1,
		Failed: []*sqlexec.StatementError{
			{Index: 0, Statement: "CREATE TABLE broken", Err: errors.New("syntax error")},
		},
	}

	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)
	mockLedger.On("List", mock.Anything).Return([]*migrations.Record{}, nil)
	mockRunner.On("ExecuteScript", mock.Anything, "0001_bad.sql", mock.Anything, mock.Anything).
		Return(failed, nil)
	mockLedger.On("Create", mock.Anything, mock.MatchedBy(func(r *migrations.Record) bool {
		return r.Name == "0001_bad.sql" && r.Failed == 1
	})).Return(nil)

	results, err := service.Up(context.Background(), sqlexec.ExecOptions{StopOnError: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted the run")
	assert.Len(t, results, 1)
	mockRunner.AssertNotCalled(t, "ExecuteScript", mock.Anything, "0002_good.sql", mock.Anything, mock.Anything)
	mockLedger.AssertExpectations(t)
}

func TestMigrationService_Status_MergesLedgerStates(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	appliedSQL := "CREATE TABLE profiles (id int);"
	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0001_core.sql":    appliedSQL,
		"0002_changed.sql": "CREATE TABLE services (id int);",
		"0003_new.sql":     "CREATE TABLE bookings (id int);",
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	appliedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)
	mockLedger.On("List", mock.Anything).Return([]*migrations.Record{
		{Name: "0001_core.sql", Checksum: migrations.Checksum([]byte(appliedSQL)), AppliedAt: appliedAt},
		{Name: "0002_changed.sql", Checksum: migrations.Checksum([]byte("old contents")), AppliedAt: appliedAt},
		{Name: "0000_deleted.sql", Checksum: "abc", AppliedAt: appliedAt},
	}, nil)

	statuses, err := service.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	byName := make(map[string]string, len(statuses))
	for _, status := range statuses {
		byName[status.Name] = status.State
	}
	assert.Equal(t, migrations.StateMissing, byName["0000_deleted.sql"])
	assert.Equal(t, migrations.StateApplied, byName["0001_core.sql"])
	assert.Equal(t, migrations.StateDrifted, byName["0002_changed.sql"])
	assert.Equal(t, migrations.StatePending, byName["0003_new.sql"])

	// Sorted by name, the ledger-only entry comes first.
	assert.Equal(t, "0000_deleted.sql", statuses[0].Name)
	assert.Nil(t, statuses[3].AppliedAt)
}

func TestMigrationService_MarkApplied(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	sql := "CREATE TABLE profiles (id int);\nCREATE TABLE services (id int);"
	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0001_core.sql": sql,
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)
	mockLedger.On("Get", mock.Anything, "0001_core.sql").Return(nil, migrations.ErrNotFound)
	mockLedger.On("Create", mock.Anything, mock.MatchedBy(func(r *migrations.Record) bool {
		return r.Name == "0001_core.sql" &&
			r.Checksum == migrations.Checksum([]byte(sql)) &&
			r.Statements == 2
	})).Return(nil)

	err = service.MarkApplied(context.Background(), "0001_core.sql")
	require.NoError(t, err)
	mockLedger.AssertExpectations(t)
	mockRunner.AssertNotCalled(t, "ExecuteScript", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMigrationService_MarkApplied_UnknownScript_Error(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0001_core.sql": "CREATE TABLE profiles (id int);",
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)

	err = service.MarkApplied(context.Background(), "0009_missing.sql")
	require.Error(t, err)
	assert.ErrorIs(t, err, migrations.ErrNotFound)
}

func TestMigrationService_MarkApplied_AlreadyRecorded_Error(t *testing.T) {
	mockLedger := new(MockLedgerRepository)
	mockRunner := new(MockScriptExecutionService)

	dir := pkgTesting.CreateTestScripts(t, map[string]string{
		"0001_core.sql": "CREATE TABLE profiles (id int);",
	})

	service, err := NewMigrationService(mockLedger, mockRunner, dir, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockLedger.On("EnsureLedger", mock.Anything).Return(nil)
	mockLedger.On("Get", mock.Anything, "0001_core.sql").Return(&migrations.Record{Name: "0001_core.sql"}, nil)

	err = service.MarkApplied(context.Background(), "0001_core.sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already recorded")
	mockLedger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
