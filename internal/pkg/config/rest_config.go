package config

import (
	"fmt"
)

// RestConfig aggregates the settings used by the read-only operations API.
type RestConfig struct {
	Port       string             `mapstructure:"port"`
	Logger     LoggerSettings     `mapstructure:"logger"`
	Database   DatabaseSettings   `mapstructure:"database"`
	BaaS       BaaSSettings       `mapstructure:"baas"`
	Cloudflare CloudflareSettings `mapstructure:"cloudflare"`
	SendGrid   SendGridSettings   `mapstructure:"sendgrid"`
	Audit      AuditSettings      `mapstructure:"audit"`
	Paths      PathsSettings      `mapstructure:"paths"`
}

// InitializeRestConfig loads the REST API configuration from the given path
// and applies environment overrides. The logger and database sections are
// validated eagerly since the API cannot serve without them.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v, err := newViperFor(configPath, "rest-api")
	if err != nil {
		return nil, err
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Logger.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
