//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

func TestAuditService_Log_StampsAndAppends(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	var appended *audit.Event
	mockStore.On("Append", mock.Anything).
		Run(func(args mock.Arguments) { appended = args.Get(0).(*audit.Event) }).
		Return(nil)
	mockMirror.On("Create", mock.Anything, mock.Anything).Return(nil)

	event := &audit.Event{Category: audit.CategoryMigrations, Action: "up"}
	err = service.Log(context.Background(), event)
	require.NoError(t, err)

	require.NotNil(t, appended)
	_, err = uuid.Parse(appended.ID)
	assert.NoError(t, err, "missing id must be stamped with a uuid")
	assert.Equal(t, audit.SeverityInfo, appended.Severity)
	assert.False(t, appended.Timestamp.IsZero())
	mockMirror.AssertExpectations(t)
}

func TestAuditService_Log_KeepsProvidedFields(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockStore.On("Append", mock.Anything).Return(nil)
	mockMirror.On("Create", mock.Anything, mock.Anything).Return(nil)

	stamp := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	event := &audit.Event{
		ID:        uuid.NewString(),
		Category:  audit.CategorySeeds,
		Action:    "seed",
		Severity:  audit.SeverityWarning,
		Timestamp: stamp,
	}
	originalID := event.ID

	err = service.Log(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, originalID, event.ID)
	assert.Equal(t, audit.SeverityWarning, event.Severity)
	assert.Equal(t, stamp, event.Timestamp)
}

func TestAuditService_Log_MirrorFailureDoesNotFail(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockStore.On("Append", mock.Anything).Return(nil)
	mockMirror.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	event := &audit.Event{Category: audit.CategoryAccounts, Action: "reset-password"}
	err = service.Log(context.Background(), event)
	assert.NoError(t, err, "the trail append is the source of record")
}

func TestAuditService_Log_NilMirrorSkipsMirroring(t *testing.T) {
	mockStore := new(MockTrailStore)

	service, err := NewAuditService(mockStore, nil, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockStore.On("Append", mock.Anything).Return(nil)

	event := &audit.Event{Category: audit.CategoryProvision, Action: "ensure-dns"}
	err = service.Log(context.Background(), event)
	assert.NoError(t, err)
}

func TestAuditService_Log_InvalidEventRejected(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	event := &audit.Event{Category: "../../etc", Action: "escape"}
	err = service.Log(context.Background(), event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	mockStore.AssertNotCalled(t, "Append", mock.Anything)
}

func TestAuditService_Log_AppendFailureIsFatal(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockStore.On("Append", mock.Anything).Return(errors.New("disk full"))

	event := &audit.Event{Category: audit.CategoryRelease, Action: "build"}
	err = service.Log(context.Background(), event)
	require.Error(t, err)
	mockMirror.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuditService_Report_AppliesWindow(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }
	events := []*audit.Event{
		{ID: uuid.NewString(), Category: "migrations", Action: "up", Severity: "info", Timestamp: day(1)},
		{ID: uuid.NewString(), Category: "migrations", Action: "up", Severity: "info", Timestamp: day(5)},
		{ID: uuid.NewString(), Category: "migrations", Action: "status", Severity: "info", Timestamp: day(9)},
	}
	mockStore.On("Scan", "migrations").Return(events, 2, nil)

	report, err := service.Report(context.Background(), "migrations", day(3), day(7))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Events)
	assert.Equal(t, 2, report.Malformed)
	assert.Equal(t, 1, report.ByAction["up"])
	assert.Equal(t, 0, report.ByAction["status"])
}

func TestAuditService_Report_OpenWindowTakesEverything(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	events := []*audit.Event{
		{ID: uuid.NewString(), Category: "seeds", Action: "seed", Severity: "info", Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.NewString(), Category: "seeds", Action: "seed", Severity: "error", Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	mockStore.On("Scan", "seeds").Return(events, 0, nil)

	report, err := service.Report(context.Background(), "seeds", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Events)
	assert.Equal(t, 1, report.BySeverity["error"])
}

func TestAuditService_Rotate(t *testing.T) {
	mockStore := new(MockTrailStore)
	mockMirror := new(MockMirrorRepository)

	service, err := NewAuditService(mockStore, mockMirror, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockStore.On("Rotate", "migrations").Return(nil)
	require.NoError(t, service.Rotate("migrations"))

	mockStore.On("Rotate", "empty").Return(errors.New("no empty trail to rotate"))
	err = service.Rotate("empty")
	require.Error(t, err)
	mockStore.AssertExpectations(t)
}
