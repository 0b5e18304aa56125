package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ReleaseSettings holds the locations of the mobile app projects that the
// release commands build store artifacts from.
type ReleaseSettings struct {
	AndroidDir string `mapstructure:"android_dir"`
	IOSDir     string `mapstructure:"ios_dir"`
	IOSScheme  string `mapstructure:"ios_scheme"`
	OutputDir  string `mapstructure:"output_dir"`
}

// Validate checks that all fields in ReleaseSettings are valid
func (s *ReleaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ReleaseSettings: %w", err)
	}
	return nil
}
