//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
)

func TestStatementExecutorSqlite_Exec(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.Executor.Exec(context.Background(),
		"CREATE TABLE scratch (id INTEGER PRIMARY KEY, label TEXT)")
	require.NoError(t, err)

	err = ctx.Executor.Exec(context.Background(),
		"INSERT INTO scratch (label) VALUES ('one')")
	require.NoError(t, err)

	var count int64
	require.NoError(t, ctx.DB.Table("scratch").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStatementExecutorSqlite_Exec_SyntaxError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.Executor.Exec(context.Background(), "CREATE TABEL broken (id INTEGER)")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "statement execution failed")
}

func TestStatementExecutorSqlite_FailureDoesNotPoisonConnection(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	require.Error(t, ctx.Executor.Exec(context.Background(), "SELECT * FROM missing_table"))

	// The next statement still runs because each one has its own implicit
	// transaction.
	err := ctx.Executor.Exec(context.Background(),
		"CREATE TABLE after_failure (id INTEGER PRIMARY KEY)")
	assert.NoError(t, err)
}
