package seeds

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when no setting exists for a key.
var ErrNotFound = errors.New("setting not found")

// Redacted replaces the value of sensitive entries in any user-facing output.
const Redacted = "[redacted]"

// Seed action constants
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
	ActionFailed  = "failed"
)

// Entry is one app_settings row. Sensitive entries hold credentials or keys;
// their values never appear in logs, CLI output or API responses.
type Entry struct {
	Key       string `yaml:"key" validate:"required,min=1,max=100"`
	Value     string `yaml:"value"`
	Category  string `yaml:"category" validate:"required,min=1,max=50"`
	Sensitive bool   `yaml:"sensitive"`
}

// Validate for validating Entry struct
func (e *Entry) Validate() error {
	validate := validator.New()

	if err := validate.Struct(e); err != nil {
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

// DisplayValue returns the value for human-facing output, redacting
// sensitive entries.
func (e *Entry) DisplayValue() string {
	if e.Sensitive {
		return Redacted
	}
	return e.Value
}

// SeedAction records what happened to one entry during a seed run.
type SeedAction struct {
	Key      string
	Category string
	Action   string
	Display  string
}

// SeedResult summarises a seed run.
type SeedResult struct {
	Created int
	Updated int
	Skipped int
	Failed  int
	Actions []SeedAction
}

// Total returns the number of entries processed.
func (r *SeedResult) Total() int {
	return r.Created + r.Updated + r.Skipped + r.Failed
}
