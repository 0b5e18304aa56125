package release

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Platform constants
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// BuildSpec describes one store artifact build.
type BuildSpec struct {
	Platform   string `validate:"required,oneof=android ios"`
	ProjectDir string `validate:"required"`
	// Scheme is the Xcode scheme; ignored for Android builds.
	Scheme    string `validate:"required_if=Platform ios"`
	OutputDir string `validate:"required"`
	Clean     bool
}

// Validate for validating BuildSpec struct
func (s *BuildSpec) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// BuildResult describes a finished build: where the artifact was copied and
// where the full toolchain output landed.
type BuildResult struct {
	Platform string
	Artifact string
	LogPath  string
	Duration time.Duration
}
