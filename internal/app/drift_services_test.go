//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

func TestDriftService_Check_CleanSchema(t *testing.T) {
	mockReader := new(MockSchemaReader)
	service, err := NewDriftService(mockReader, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockReader.On("ReadTables", mock.Anything, "public").Return(drift.ExpectedCatalog(), nil)

	result, err := service.Check(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Clean())
	mockReader.AssertExpectations(t)
}

func TestDriftService_Check_ReportsMissingTableAndColumn(t *testing.T) {
	mockReader := new(MockSchemaReader)
	service, err := NewDriftService(mockReader, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	live := drift.ExpectedCatalog()
	// Drop the bookings table and the profiles email column from the live view.
	var mutated []drift.TableSpec
	for _, table := range live {
		if table.Name == "bookings" {
			continue
		}
		if table.Name == "profiles" {
			var cols []drift.ColumnSpec
			for _, c := range table.Columns {
				if c.Name == "email" {
					continue
				}
				cols = append(cols, c)
			}
			table.Columns = cols
		}
		mutated = append(mutated, table)
	}
	mockReader.On("ReadTables", mock.Anything, "public").Return(mutated, nil)

	result, err := service.Check(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Clean())
	assert.Contains(t, result.MissingTables, "bookings")
	assert.Contains(t, result.MissingColumns, "profiles.email")
}

func TestDriftService_Check_ToleratesExtraLiveTables(t *testing.T) {
	mockReader := new(MockSchemaReader)
	service, err := NewDriftService(mockReader, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	live := append(drift.ExpectedCatalog(), drift.TableSpec{
		Name:    "scratch_export",
		Columns: []drift.ColumnSpec{{Name: "id", DataType: "bigint"}},
	})
	mockReader.On("ReadTables", mock.Anything, "public").Return(live, nil)

	result, err := service.Check(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Clean(), "live-only tables are informational")
	assert.Contains(t, result.UnexpectedTables, "scratch_export")
}

func TestDriftService_Dump_PassesThrough(t *testing.T) {
	mockReader := new(MockSchemaReader)
	service, err := NewDriftService(mockReader, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	tables := []drift.TableSpec{{Name: "profiles"}}
	mockReader.On("ReadTables", mock.Anything, "public").Return(tables, nil)

	got, err := service.Dump(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tables, got)
}

func TestDriftService_Check_ReaderFailure(t *testing.T) {
	mockReader := new(MockSchemaReader)
	service, err := NewDriftService(mockReader, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	mockReader.On("ReadTables", mock.Anything, "public").Return(nil, errors.New("connection reset"))

	_, err = service.Check(context.Background())
	require.Error(t, err)
}
