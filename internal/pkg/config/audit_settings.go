package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AuditSettings holds the storage settings for operational audit trails.
// Events are appended to JSONL files under Dir, one file per category, and
// mirrored to the admin audit table when MirrorToDB is set.
type AuditSettings struct {
	Dir        string `mapstructure:"dir" validate:"required"`
	MirrorToDB bool   `mapstructure:"mirror_to_db"`
}

// Validate checks that all fields in AuditSettings are valid
func (s *AuditSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuditSettings: %w", err)
	}
	return nil
}
