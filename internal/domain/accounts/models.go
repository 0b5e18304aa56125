package accounts

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Profile role constants
const (
	RoleClient  = "client"
	RoleReader  = "reader"
	RoleMonitor = "monitor"
	RoleAdmin   = "admin"
)

// ErrProfileNotFound is returned when no profile matches the lookup.
var ErrProfileNotFound = errors.New("profile not found")

// Profile entity. The ID mirrors the platform's auth user id, which is why
// password resets push the same credential to both the profiles table and the
// auth admin API.
type Profile struct {
	ID           string    `validate:"required,uuid4"`
	Email        string    `validate:"required,email"`
	DisplayName  string    `validate:"omitempty,max=100"`
	Role         string    `validate:"required,oneof=client reader monitor admin"`
	PasswordHash string    `validate:"omitempty,max=255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate for validating Profile struct
func (p *Profile) Validate() error {
	validate := validator.New()

	if err := validate.Struct(p); err != nil {
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

// AdminUser is an auth user as reported by the platform's admin API.
type AdminUser struct {
	ID        string
	Email     string
	Role      string
	Confirmed bool
}

// FixResult summarises a fix-missing-passwords run. Password holds the one
// plaintext the operator must hand out; it is printed exactly once and never
// logged or stored.
type FixResult struct {
	Examined int
	Updated  int
	Failed   int
	Password string
}

// FixOptions controls a fix-missing-passwords run.
type FixOptions struct {
	// TempPassword is applied to every profile missing a hash. When empty a
	// random password is generated per run.
	TempPassword string
	// DryRun reports the affected profiles without writing anything.
	DryRun bool
}
