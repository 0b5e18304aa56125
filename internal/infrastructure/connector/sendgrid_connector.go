package connector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sony/gobreaker"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/provision"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

const sendgridHost = "https://api.sendgrid.com"

// SendGridConnector drives domain authentication and sender identity setup
// through the SendGrid API.
type SendGridConnector struct {
	settings *config.SendGridSettings
	cb       *gobreaker.CircuitBreaker
	logger   logger.Logger
	// send posts one prepared request. Tests inject a fake; production uses
	// sendgrid.API.
	send func(request rest.Request) (*rest.Response, error)
}

// NewSendGridConnector creates a connector authenticated with the configured
// API key.
func NewSendGridConnector(settings *config.SendGridSettings, cb *gobreaker.CircuitBreaker, logger logger.Logger) (*SendGridConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.Provider != config.SendGridEmailProvider {
		return nil, fmt.Errorf("unsupported email provider: %s (only SendGrid is supported)", settings.Provider)
	}

	return &SendGridConnector{
		settings: settings,
		cb:       cb,
		logger:   logger,
		send:     sendgrid.API,
	}, nil
}

// domainAuthResponse mirrors the fragments of the whitelabel domain object
// the connector reads.
type domainAuthResponse struct {
	ID     int64  `json:"id"`
	Domain string `json:"domain"`
	Valid  bool   `json:"valid"`
	DNS    map[string]struct {
		Host  string `json:"host"`
		Type  string `json:"type"`
		Data  string `json:"data"`
		Valid bool   `json:"valid"`
	} `json:"dns"`
}

func (d *domainAuthResponse) toDomain() *provision.DomainAuth {
	auth := &provision.DomainAuth{
		ID:     d.ID,
		Domain: d.Domain,
		Valid:  d.Valid,
	}
	for _, record := range d.DNS {
		if record.Host == "" {
			continue
		}
		auth.DNS = append(auth.DNS, provision.DNSRecord{
			Type:    strings.ToUpper(record.Type),
			Name:    record.Host,
			Content: record.Data,
			TTL:     provision.TTLAuto,
		})
	}
	return auth
}

// AuthenticateDomain fetches the existing domain authentication or creates a
// new one with automatic security, returning the CNAME set SendGrid wants
// published. Those CNAMEs must stay unproxied or validation fails.
func (c *SendGridConnector) AuthenticateDomain(ctx context.Context, domain string) (*provision.DomainAuth, error) {
	existing, err := c.findDomainAuth(ctx, domain)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		c.logger.Info("Domain authentication for ", domain, " already exists with id ", existing.ID)
		return existing.toDomain(), nil
	}

	payload, err := json.Marshal(map[string]any{
		"domain":             domain,
		"automatic_security": true,
		"default":            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	request := sendgrid.GetRequest(c.settings.APIKey, "/v3/whitelabel/domains", sendgridHost)
	request.Method = rest.Post
	request.Body = payload

	response, err := c.doSend(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create domain authentication: %w", err)
	}

	var created domainAuthResponse
	if err := json.Unmarshal([]byte(response.Body), &created); err != nil {
		return nil, fmt.Errorf("failed to decode domain authentication: %w", err)
	}

	c.logger.Info("Created domain authentication for ", domain, " with id ", created.ID)
	return created.toDomain(), nil
}

// ValidateDomain asks SendGrid to re-check the published DNS.
func (c *SendGridConnector) ValidateDomain(ctx context.Context, id int64) (bool, error) {
	request := sendgrid.GetRequest(c.settings.APIKey, fmt.Sprintf("/v3/whitelabel/domains/%d/validate", id), sendgridHost)
	request.Method = rest.Post

	response, err := c.doSend(ctx, request)
	if err != nil {
		return false, fmt.Errorf("failed to validate domain: %w", err)
	}

	var result struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal([]byte(response.Body), &result); err != nil {
		return false, fmt.Errorf("failed to decode validation result: %w", err)
	}
	return result.Valid, nil
}

// EnsureSender registers the sender identity when it is not already present.
func (c *SendGridConnector) EnsureSender(ctx context.Context, email, name string) error {
	request := sendgrid.GetRequest(c.settings.APIKey, "/v3/verified_senders", sendgridHost)
	request.Method = rest.Get

	response, err := c.doSend(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to list verified senders: %w", err)
	}

	var senders struct {
		Results []struct {
			FromEmail string `json:"from_email"`
			Verified  bool   `json:"verified"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(response.Body), &senders); err != nil {
		return fmt.Errorf("failed to decode verified senders: %w", err)
	}

	for _, sender := range senders.Results {
		if strings.EqualFold(sender.FromEmail, email) {
			c.logger.Info("Sender identity ", email, " already registered")
			return nil
		}
	}

	replyTo := c.settings.ReplyTo
	if replyTo == "" {
		replyTo = email
	}
	payload, err := json.Marshal(map[string]any{
		"nickname":   name,
		"from_email": email,
		"from_name":  name,
		"reply_to":   replyTo,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	create := sendgrid.GetRequest(c.settings.APIKey, "/v3/verified_senders", sendgridHost)
	create.Method = rest.Post
	create.Body = payload

	if _, err := c.doSend(ctx, create); err != nil {
		return fmt.Errorf("failed to create sender identity: %w", err)
	}

	c.logger.Info("Requested sender verification for ", email)
	return nil
}

// Probe lists the API key's scopes, which exercises authentication without
// touching mail settings. Persistent failures trip the breaker after three
// consecutive errors.
func (c *SendGridConnector) Probe(ctx context.Context) health.ProbeResult {
	start := time.Now()

	_, err := c.cb.Execute(func() (any, error) {
		request := sendgrid.GetRequest(c.settings.APIKey, "/v3/scopes", sendgridHost)
		request.Method = rest.Get
		return c.doSend(ctx, request)
	})

	latency := time.Since(start).Milliseconds()

	if err != nil {
		errMsg := err.Error()
		if errors.Is(err, gobreaker.ErrOpenState) {
			errMsg = "circuit open"
		}
		return health.ProbeResult{
			Name:      health.ProbeSendGrid,
			OK:        false,
			LatencyMs: latency,
			Error:     errMsg,
		}
	}

	return health.ProbeResult{
		Name:      health.ProbeSendGrid,
		OK:        true,
		LatencyMs: latency,
	}
}

// findDomainAuth returns the existing authentication for the domain, or nil.
func (c *SendGridConnector) findDomainAuth(ctx context.Context, domain string) (*domainAuthResponse, error) {
	request := sendgrid.GetRequest(c.settings.APIKey, "/v3/whitelabel/domains", sendgridHost)
	request.Method = rest.Get
	request.QueryParams = map[string]string{"domain": domain}

	response, err := c.doSend(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to list domain authentications: %w", err)
	}

	var domains []domainAuthResponse
	if err := json.Unmarshal([]byte(response.Body), &domains); err != nil {
		return nil, fmt.Errorf("failed to decode domain authentications: %w", err)
	}

	for i := range domains {
		if strings.EqualFold(domains[i].Domain, domain) {
			return &domains[i], nil
		}
	}
	return nil, nil
}

// doSend posts the request and maps non-2xx responses to errors.
func (c *SendGridConnector) doSend(ctx context.Context, request rest.Request) (*rest.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response, err := c.send(request)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("sendgrid API returned %d: %s", response.StatusCode, truncateBody(response.Body))
	}
	return response, nil
}

func truncateBody(body string) string {
	const limit = 256
	body = strings.TrimSpace(body)
	if body == "" {
		return "no error body"
	}
	if len(body) > limit {
		return body[:limit]
	}
	return body
}
