package provision

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DNS record type constants
const (
	RecordTypeA     = "A"
	RecordTypeAAAA  = "AAAA"
	RecordTypeCNAME = "CNAME"
	RecordTypeTXT   = "TXT"
	RecordTypeMX    = "MX"
)

// Ensure action constants
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionKept    = "kept"
)

// TTLAuto lets the DNS provider pick the TTL.
const TTLAuto = 1

// DNSRecord is one record the provisioner ensures exists in the zone.
type DNSRecord struct {
	Type     string `yaml:"type" validate:"required,oneof=A AAAA CNAME TXT MX"`
	Name     string `yaml:"name" validate:"required,max=255"`
	Content  string `yaml:"content" validate:"required"`
	TTL      int    `yaml:"ttl" validate:"omitempty,min=1"`
	Proxied  bool   `yaml:"proxied"`
	Priority uint16 `yaml:"priority"`
}

// Validate for validating DNSRecord struct
func (r *DNSRecord) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
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

// EnsureResult records what the provisioner did for one record.
type EnsureResult struct {
	Record DNSRecord
	Action string
	Err    error
}

// DomainAuth is the email provider's domain authentication state together
// with the DNS records it wants published.
type DomainAuth struct {
	ID     int64
	Domain string
	Valid  bool
	DNS    []DNSRecord
}
