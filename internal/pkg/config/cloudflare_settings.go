package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CloudflareSettings holds the API credentials and zone used for DNS provisioning.
// The API token is supplied through the environment, never committed.
type CloudflareSettings struct {
	Provider string `mapstructure:"provider" validate:"required"`
	APIToken string `mapstructure:"api_token" validate:"required"`
	ZoneName string `mapstructure:"zone_name" validate:"required,fqdn"`
}

// Validate checks that all fields in CloudflareSettings are valid
func (s *CloudflareSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CloudflareSettings: %w", err)
	}
	return nil
}
