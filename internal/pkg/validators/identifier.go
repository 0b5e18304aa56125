package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidIdentifier reports whether s is safe to interpolate into DDL as an
// unquoted identifier (table, column, policy or role name). Policy and seed
// definitions are rendered into SQL text, so anything that is not a plain
// lowercase identifier is rejected before it reaches the database.
func ValidIdentifier(s string) bool {
	if s == "" || len(s) > 63 {
		return false
	}
	return identifierPattern.MatchString(s)
}

// IdentifierValidation validates that a struct field holds a plain SQL identifier.
func IdentifierValidation(fl validator.FieldLevel) bool {
	return ValidIdentifier(fl.Field().String())
}
