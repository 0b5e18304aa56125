//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ops.yaml")
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
	return path
}

func TestInitializeOpsConfig(t *testing.T) {
	path := writeTestConfig(t, `
logger:
  log_level: debug
  log_type: console
database:
  type: postgres
  dsn: "user=ops host=localhost port=5432 sslmode=disable"
  name: samia_tarot
baas:
  project_url: https://project.example.co
audit:
  dir: /tmp/audit
paths:
  migrations_dir: migrations
`)

	cfg, err := InitializeOpsConfig(path)
	require.NoError(t, err)

	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, PostgresDbType, cfg.Database.Type)
	assert.Equal(t, "samia_tarot", cfg.Database.Name)
	assert.Equal(t, "https://project.example.co", cfg.BaaS.ProjectURL)
	assert.Equal(t, "/tmp/audit", cfg.Audit.Dir)
	assert.Equal(t, "migrations", cfg.Paths.MigrationsDir)
}

func TestInitializeOpsConfig_Defaults(t *testing.T) {
	path := writeTestConfig(t, `
logger:
  log_level: info
  log_type: console
`)

	cfg, err := InitializeOpsConfig(path)
	require.NoError(t, err)

	assert.Equal(t, PostgresDbType, cfg.Database.Type)
	assert.Equal(t, "migrations", cfg.Paths.MigrationsDir)
	assert.Equal(t, "ops/audit", cfg.Audit.Dir)
	assert.True(t, cfg.Audit.MirrorToDB)
	assert.Equal(t, CloudflareDNSProvider, cfg.Cloudflare.Provider)
	assert.Equal(t, SendGridEmailProvider, cfg.SendGrid.Provider)
}

func TestInitializeOpsConfig_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, `
logger:
  log_level: info
  log_type: console
baas:
  project_url: https://project.example.co
`)

	t.Setenv("SAMIA_OPS_BAAS_SERVICE_ROLE_KEY", "srk-from-env")
	t.Setenv("SAMIA_OPS_DATABASE_DSN", "user=env host=localhost")

	cfg, err := InitializeOpsConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "srk-from-env", cfg.BaaS.ServiceRoleKey)
	assert.Equal(t, "user=env host=localhost", cfg.Database.DSN)
}

func TestInitializeOpsConfig_MissingFile(t *testing.T) {
	_, err := InitializeOpsConfig("/nonexistent/ops.yaml")
	assert.Error(t, err)
}

func TestInitializeOpsConfig_InvalidLogger(t *testing.T) {
	path := writeTestConfig(t, `
logger:
  log_level: bogus
  log_type: console
`)

	_, err := InitializeOpsConfig(path)
	assert.Error(t, err)
}

func TestInitializeRestConfig(t *testing.T) {
	path := writeTestConfig(t, `
port: "9090"
logger:
  log_level: info
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
`)

	cfg, err := InitializeRestConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
}

func TestInitializeRestConfig_MissingDatabase(t *testing.T) {
	path := writeTestConfig(t, `
logger:
  log_level: info
  log_type: console
database:
  type: postgres
  dsn: ""
`)

	// database.dsn is required for the REST API
	_, err := InitializeRestConfig(path)
	assert.Error(t, err)
}
