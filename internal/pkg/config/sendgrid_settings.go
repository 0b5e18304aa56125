package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SendGridSettings holds the API credentials and sender identity used for
// transactional email provisioning. The API key is supplied through the
// environment, never committed.
type SendGridSettings struct {
	Provider    string `mapstructure:"provider" validate:"required"`
	APIKey      string `mapstructure:"api_key" validate:"required"`
	Domain      string `mapstructure:"domain" validate:"required,fqdn"`
	SenderEmail string `mapstructure:"sender_email" validate:"required,email"`
	SenderName  string `mapstructure:"sender_name" validate:"required"`
	ReplyTo     string `mapstructure:"reply_to" validate:"omitempty,email"`
}

// Validate checks that all fields in SendGridSettings are valid
func (s *SendGridSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SendGridSettings: %w", err)
	}
	return nil
}
