package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BaaSSettings holds the connection settings for the managed backend platform
// that owns authentication. The service role key is privileged and must only
// ever be supplied through the environment or an untracked .env file, never
// committed to configuration files.
type BaaSSettings struct {
	ProjectURL     string `mapstructure:"project_url" validate:"required,url"`
	ServiceRoleKey string `mapstructure:"service_role_key" validate:"required"`
	AnonKey        string `mapstructure:"anon_key"`
}

// Validate checks that all fields in BaaSSettings are valid
func (s *BaaSSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for BaaSSettings: %w", err)
	}
	return nil
}

// BaseURL returns the project URL without a trailing slash.
func (s *BaaSSettings) BaseURL() string {
	return strings.TrimRight(s.ProjectURL, "/")
}
