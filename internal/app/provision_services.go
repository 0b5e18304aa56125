package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/provision"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// instructionsFileName is the manual-setup file written for unmanaged zones.
const instructionsFileName = "dns-instructions.md"

// provisionService implements the ProvisionService interface over the DNS and
// email provider connectors
type provisionService struct {
	dnsConnector    provision.DNSConnector
	emailConnector  provision.EmailConnector
	settings        *config.SendGridSettings
	instructionsDir string
	logger          logger.Logger
}

// NewProvisionService creates a new provisionService instance
func NewProvisionService(dnsConnector provision.DNSConnector, emailConnector provision.EmailConnector, settings *config.SendGridSettings, instructionsDir string, logger logger.Logger) (provision.ProvisionService, error) {
	if instructionsDir == "" {
		return nil, fmt.Errorf("instructions directory must not be empty")
	}

	return &provisionService{
		dnsConnector:    dnsConnector,
		emailConnector:  emailConnector,
		settings:        settings,
		instructionsDir: instructionsDir,
		logger:          logger,
	}, nil
}

// EnsureDNS verifies the API credential, then converges the zone on the
// record plan.
func (s *provisionService) EnsureDNS(ctx context.Context, records []provision.DNSRecord) ([]provision.EnsureResult, error) {
	if err := s.dnsConnector.VerifyToken(ctx); err != nil {
		return nil, err
	}

	results, err := s.dnsConnector.EnsureRecords(ctx, records)
	if err != nil {
		return nil, err
	}

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	s.logger.Info("Ensured ", len(results), " DNS records (", failed, " failed)")

	return results, nil
}

// AuthenticateEmail runs domain authentication with the email provider,
// registers the sender identity and asks for validation when the domain is
// not valid yet. A validation failure is expected before the DNS records
// propagate, so it is logged rather than returned.
func (s *provisionService) AuthenticateEmail(ctx context.Context) (*provision.DomainAuth, error) {
	auth, err := s.emailConnector.AuthenticateDomain(ctx, s.settings.Domain)
	if err != nil {
		return nil, err
	}

	if err := s.emailConnector.EnsureSender(ctx, s.settings.SenderEmail, s.settings.SenderName); err != nil {
		return auth, fmt.Errorf("domain authenticated but sender setup failed: %w", err)
	}

	if !auth.Valid {
		valid, err := s.emailConnector.ValidateDomain(ctx, auth.ID)
		if err != nil {
			s.logger.Warn("Domain ", auth.Domain, " validation attempt failed: ", err)
		} else {
			auth.Valid = valid
		}
	}

	if auth.Valid {
		s.logger.Info("Domain ", auth.Domain, " is authenticated for sending")
	} else {
		s.logger.Warn("Domain ", auth.Domain, " is not validated yet; publish its DNS records and re-run")
	}

	return auth, nil
}

// WriteInstructions renders the manual-setup markdown and writes it under the
// instructions directory, returning the written path.
func (s *provisionService) WriteInstructions(domain string, records []provision.DNSRecord) (string, error) {
	if err := os.MkdirAll(s.instructionsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create instructions directory %s: %w", s.instructionsDir, err)
	}

	path := filepath.Join(s.instructionsDir, instructionsFileName)
	content := provision.RenderInstructions(domain, records, time.Now().UTC())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write DNS instructions to %s: %w", path, err)
	}

	s.logger.Info("Wrote DNS instructions for ", domain, " to ", path)
	return path, nil
}
