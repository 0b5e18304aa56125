package policies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Policy command constants
const (
	CommandAll    = "ALL"
	CommandSelect = "SELECT"
	CommandInsert = "INSERT"
	CommandUpdate = "UPDATE"
	CommandDelete = "DELETE"
)

// Policy entity. A policy is rendered into DDL, so every identifier field is
// validated against a strict pattern before any SQL is produced.
type Policy struct {
	Table     string   `yaml:"table" validate:"required,identifier"`
	Name      string   `yaml:"name" validate:"required,identifier"`
	Command   string   `yaml:"command" validate:"required,oneof=ALL SELECT INSERT UPDATE DELETE"`
	Roles     []string `yaml:"roles" validate:"required,min=1,dive,identifier"`
	Using     string   `yaml:"using"`
	WithCheck string   `yaml:"with_check"`
}

// Validate for validating Policy struct
func (p *Policy) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("identifier", validators.IdentifierValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(p)
	if err != nil {
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

	// Postgres rejects USING on INSERT policies and WITH CHECK on SELECT
	// and DELETE policies, so catch both before rendering.
	if p.Command == CommandInsert && p.Using != "" {
		return fmt.Errorf("policy %s: INSERT policies cannot have a USING clause", p.Name)
	}
	if (p.Command == CommandSelect || p.Command == CommandDelete) && p.WithCheck != "" {
		return fmt.Errorf("policy %s: %s policies cannot have a WITH CHECK clause", p.Name, p.Command)
	}

	return nil
}

// EnableRLS returns the statement that turns row level security on for the
// policy's table. Re-running it against an already secured table is harmless.
func (p *Policy) EnableRLS() string {
	return fmt.Sprintf("ALTER TABLE public.%s ENABLE ROW LEVEL SECURITY", p.Table)
}

// Render produces the DROP and CREATE statements for the policy. The drop
// makes the apply idempotent: re-running replaces the definition instead of
// failing on a duplicate name.
func (p *Policy) Render() ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var create strings.Builder
	fmt.Fprintf(&create, "CREATE POLICY %s ON public.%s", p.Name, p.Table)
	fmt.Fprintf(&create, " FOR %s", p.Command)
	fmt.Fprintf(&create, " TO %s", strings.Join(p.Roles, ", "))
	if p.Using != "" {
		fmt.Fprintf(&create, " USING (%s)", p.Using)
	}
	if p.WithCheck != "" {
		fmt.Fprintf(&create, " WITH CHECK (%s)", p.WithCheck)
	}

	return []string{
		fmt.Sprintf("DROP POLICY IF EXISTS %s ON public.%s", p.Name, p.Table),
		create.String(),
	}, nil
}

// RenderAll produces the full DDL for a set of policies as one script text,
// enabling row level security once per table.
func RenderAll(policies []Policy) (string, error) {
	var sb strings.Builder
	enabled := make(map[string]bool)

	for i := range policies {
		p := &policies[i]
		stmts, err := p.Render()
		if err != nil {
			return "", err
		}
		if !enabled[p.Table] {
			sb.WriteString(p.EnableRLS())
			sb.WriteString(";\n")
			enabled[p.Table] = true
		}
		for _, stmt := range stmts {
			sb.WriteString(stmt)
			sb.WriteString(";\n")
		}
	}

	return sb.String(), nil
}
