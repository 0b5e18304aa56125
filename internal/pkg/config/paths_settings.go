package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PathsSettings holds the filesystem locations the toolkit reads manifests
// and migration scripts from. Manifest paths are optional; when empty the
// built-in catalogs apply.
type PathsSettings struct {
	MigrationsDir    string `mapstructure:"migrations_dir" validate:"required"`
	PoliciesManifest string `mapstructure:"policies_manifest"`
	SeedsManifest    string `mapstructure:"seeds_manifest"`
	BudgetsManifest  string `mapstructure:"budgets_manifest"`
	InstructionsDir  string `mapstructure:"instructions_dir"`
}

// Validate checks that all fields in PathsSettings are valid
func (s *PathsSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for PathsSettings: %w", err)
	}
	return nil
}
