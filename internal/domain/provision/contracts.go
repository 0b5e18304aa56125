package provision

import (
	"context"
)

// ProvisionService defines methods for DNS and transactional email setup.
type ProvisionService interface {
	// EnsureDNS applies the record plan to the zone: missing records are
	// created, records whose content differs are updated, matches are kept.
	// Re-running against a converged zone is a no-op.
	EnsureDNS(ctx context.Context, records []DNSRecord) ([]EnsureResult, error)

	// AuthenticateEmail runs domain authentication with the email provider,
	// ensures the sender identity, and returns the DNS records the provider
	// wants published.
	AuthenticateEmail(ctx context.Context) (*DomainAuth, error)

	// WriteInstructions renders the manual-setup markdown for zones not
	// managed by the DNS provider and writes it under the instructions
	// directory. It returns the written path.
	WriteInstructions(domain string, records []DNSRecord) (string, error)
}

// DNSConnector is an interface for the DNS provider's API.
type DNSConnector interface {
	// EnsureRecords converges the zone on the given records. The zone is
	// resolved by name before any mutation; an unknown zone is a hard error.
	EnsureRecords(ctx context.Context, records []DNSRecord) ([]EnsureResult, error)

	// VerifyToken checks the API credential is valid and active.
	VerifyToken(ctx context.Context) error
}

// EmailConnector is an interface for the transactional email provider's API.
type EmailConnector interface {
	// AuthenticateDomain creates the domain authentication, or fetches it
	// when it already exists, and returns the CNAME set the provider wants.
	AuthenticateDomain(ctx context.Context, domain string) (*DomainAuth, error)

	// ValidateDomain asks the provider to re-check the published DNS and
	// reports whether the domain now validates.
	ValidateDomain(ctx context.Context, id int64) (bool, error)

	// EnsureSender registers the sender identity used for transactional
	// mail when it is not already present.
	EnsureSender(ctx context.Context, email, name string) error
}
