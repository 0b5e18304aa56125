package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/validators"
)

// Severity constants
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Category constants for the trails the toolkit writes itself. Categories are
// open-ended; these are the ones the CLI commands use.
const (
	CategoryMigrations = "migrations"
	CategoryPolicies   = "policies"
	CategorySeeds      = "seeds"
	CategoryAccounts   = "accounts"
	CategoryProvision  = "provision"
	CategoryRelease    = "release"
)

// Event is one audit trail entry. The category picks the JSONL file the event
// lands in and must be a plain identifier since it becomes a file name.
type Event struct {
	ID          string         `json:"id" validate:"required,uuid4"`
	Category    string         `json:"category" validate:"required,identifier"`
	Action      string         `json:"action" validate:"required,min=1,max=100"`
	Actor       string         `json:"actor" validate:"omitempty,max=100"`
	TargetTable string         `json:"target_table,omitempty" validate:"omitempty,identifier"`
	Severity    string         `json:"severity" validate:"required,oneof=info warning error critical"`
	Message     string         `json:"message,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Validate for validating Event struct
func (e *Event) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("identifier", validators.IdentifierValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

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

// Report aggregates one category's trail over a time window. Counts only; the
// trail is the source of record and the report never mutates it.
type Report struct {
	Category   string         `json:"category"`
	Events     int            `json:"events"`
	Malformed  int            `json:"malformed"`
	ByAction   map[string]int `json:"by_action"`
	BySeverity map[string]int `json:"by_severity"`
	ByActor    map[string]int `json:"by_actor"`
	PerDay     map[string]int `json:"per_day"`
	First      time.Time      `json:"first,omitempty"`
	Last       time.Time      `json:"last,omitempty"`
}

// NewReport returns an empty report for the category with all maps ready.
func NewReport(category string) *Report {
	return &Report{
		Category:   category,
		ByAction:   make(map[string]int),
		BySeverity: make(map[string]int),
		ByActor:    make(map[string]int),
		PerDay:     make(map[string]int),
	}
}

// Add folds one event into the report's counters.
func (r *Report) Add(e *Event) {
	r.Events++
	r.ByAction[e.Action]++
	r.BySeverity[e.Severity]++
	if e.Actor != "" {
		r.ByActor[e.Actor]++
	}
	r.PerDay[e.Timestamp.UTC().Format("2006-01-02")]++

	if r.First.IsZero() || e.Timestamp.Before(r.First) {
		r.First = e.Timestamp
	}
	if e.Timestamp.After(r.Last) {
		r.Last = e.Timestamp
	}
}
