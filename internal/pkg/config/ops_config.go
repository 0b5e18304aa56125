package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// SAMIA_OPS_DATABASE_DSN maps to the database.dsn key.
const EnvPrefix = "SAMIA_OPS"

// OpsConfig aggregates the settings used by the operations CLI.
type OpsConfig struct {
	Logger     LoggerSettings     `mapstructure:"logger"`
	Database   DatabaseSettings   `mapstructure:"database"`
	BaaS       BaaSSettings       `mapstructure:"baas"`
	Cloudflare CloudflareSettings `mapstructure:"cloudflare"`
	SendGrid   SendGridSettings   `mapstructure:"sendgrid"`
	Audit      AuditSettings      `mapstructure:"audit"`
	Paths      PathsSettings      `mapstructure:"paths"`
	Release    ReleaseSettings    `mapstructure:"release"`
}

// InitializeOpsConfig loads the CLI configuration from the given path, or from
// configs/ops.yaml when the path is empty, and applies environment overrides.
// Only the logger section is validated here; the vendor sections are validated
// by the commands that use them, so that credentials are only required for the
// operations that actually need them.
func InitializeOpsConfig(configPath string) (*OpsConfig, error) {
	v, err := newViperFor(configPath, "ops")
	if err != nil {
		return nil, err
	}

	var cfg OpsConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Logger.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// newViperFor prepares a viper instance for the named config. An explicit
// path must exist; the default search locations may be absent, in which case
// defaults plus environment variables carry the whole configuration.
func newViperFor(configPath, configName string) (*viper.Viper, error) {
	v := viper.New()
	setConfigDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setConfigDefaults registers every known key so that environment overrides
// are picked up during Unmarshal even when the key is absent from the file.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("database.type", PostgresDbType)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.name", "")

	v.SetDefault("baas.project_url", "")
	v.SetDefault("baas.service_role_key", "")
	v.SetDefault("baas.anon_key", "")

	v.SetDefault("cloudflare.provider", CloudflareDNSProvider)
	v.SetDefault("cloudflare.api_token", "")
	v.SetDefault("cloudflare.zone_name", "")

	v.SetDefault("sendgrid.provider", SendGridEmailProvider)
	v.SetDefault("sendgrid.api_key", "")
	v.SetDefault("sendgrid.domain", "")
	v.SetDefault("sendgrid.sender_email", "")
	v.SetDefault("sendgrid.sender_name", "")
	v.SetDefault("sendgrid.reply_to", "")

	v.SetDefault("audit.dir", "ops/audit")
	v.SetDefault("audit.mirror_to_db", true)

	v.SetDefault("paths.migrations_dir", "migrations")
	v.SetDefault("paths.policies_manifest", "")
	v.SetDefault("paths.seeds_manifest", "")
	v.SetDefault("paths.budgets_manifest", "")
	v.SetDefault("paths.instructions_dir", "ops/instructions")

	v.SetDefault("release.android_dir", "")
	v.SetDefault("release.ios_dir", "")
	v.SetDefault("release.ios_scheme", "")
	v.SetDefault("release.output_dir", "ops/artifacts")

	v.SetDefault("port", "8080")
}
