package connector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudflare/cloudflare-go"
	"github.com/sony/gobreaker"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/provision"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// cloudflareAPI abstracts the cloudflare-go client methods the connector uses
// so tests can inject a fake without a live zone.
type cloudflareAPI interface {
	ZoneIDByName(zoneName string) (string, error)
	ListDNSRecords(ctx context.Context, rc *cloudflare.ResourceContainer, params cloudflare.ListDNSRecordsParams) ([]cloudflare.DNSRecord, *cloudflare.ResultInfo, error)
	CreateDNSRecord(ctx context.Context, rc *cloudflare.ResourceContainer, params cloudflare.CreateDNSRecordParams) (cloudflare.DNSRecord, error)
	UpdateDNSRecord(ctx context.Context, rc *cloudflare.ResourceContainer, params cloudflare.UpdateDNSRecordParams) (cloudflare.DNSRecord, error)
	VerifyAPIToken(ctx context.Context) (cloudflare.APITokenVerifyBody, error)
}

// CloudflareConnector converges DNS records in the platform zone through the
// Cloudflare API.
type CloudflareConnector struct {
	settings *config.CloudflareSettings
	api      cloudflareAPI
	cb       *gobreaker.CircuitBreaker
	logger   logger.Logger
}

// NewCloudflareConnector creates a connector authenticated with the
// configured API token.
func NewCloudflareConnector(settings *config.CloudflareSettings, cb *gobreaker.CircuitBreaker, logger logger.Logger) (*CloudflareConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.Provider != config.CloudflareDNSProvider {
		return nil, fmt.Errorf("unsupported DNS provider: %s (only Cloudflare is supported)", settings.Provider)
	}

	api, err := cloudflare.NewWithAPIToken(settings.APIToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudflare client: %w", err)
	}

	return &CloudflareConnector{
		settings: settings,
		api:      api,
		cb:       cb,
		logger:   logger,
	}, nil
}

// EnsureRecords converges the zone on the given records. Singleton types (A,
// AAAA, CNAME) are updated in place when their content differs; multi-value
// types (TXT, MX) are only ever created, so unrelated records at the same
// name survive. Per-record failures are collected, not fatal.
func (c *CloudflareConnector) EnsureRecords(ctx context.Context, records []provision.DNSRecord) ([]provision.EnsureResult, error) {
	zoneID, err := c.api.ZoneIDByName(c.settings.ZoneName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve zone %s: %w", c.settings.ZoneName, err)
	}
	rc := cloudflare.ZoneIdentifier(zoneID)

	existing, err := c.listAllRecords(ctx, rc)
	if err != nil {
		return nil, err
	}

	results := make([]provision.EnsureResult, 0, len(records))
	for _, record := range records {
		result := provision.EnsureResult{Record: record}

		if err := record.Validate(); err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		match, contentMatches := findRecord(existing, record)
		switch {
		case match != nil && contentMatches:
			result.Action = provision.ActionKept

		case match != nil:
			_, err := c.api.UpdateDNSRecord(ctx, rc, cloudflare.UpdateDNSRecordParams{
				ID:       match.ID,
				Type:     record.Type,
				Name:     record.Name,
				Content:  record.Content,
				TTL:      ttlOrAuto(record.TTL),
				Proxied:  &record.Proxied,
				Priority: priorityFor(record),
			})
			if err != nil {
				result.Err = fmt.Errorf("failed to update %s %s: %w", record.Type, record.Name, err)
			} else {
				result.Action = provision.ActionUpdated
				c.logger.Info("Updated DNS record ", record.Type, " ", record.Name)
			}

		default:
			_, err := c.api.CreateDNSRecord(ctx, rc, cloudflare.CreateDNSRecordParams{
				Type:     record.Type,
				Name:     record.Name,
				Content:  record.Content,
				TTL:      ttlOrAuto(record.TTL),
				Proxied:  &record.Proxied,
				Priority: priorityFor(record),
			})
			if err != nil {
				result.Err = fmt.Errorf("failed to create %s %s: %w", record.Type, record.Name, err)
			} else {
				result.Action = provision.ActionCreated
				c.logger.Info("Created DNS record ", record.Type, " ", record.Name)
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// VerifyToken checks the API token is valid and active.
func (c *CloudflareConnector) VerifyToken(ctx context.Context) error {
	body, err := c.api.VerifyAPIToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify cloudflare token: %w", err)
	}
	if !strings.EqualFold(body.Status, "active") {
		return fmt.Errorf("cloudflare token status is %s", body.Status)
	}
	return nil
}

// Probe verifies the API token. Persistent failures trip the breaker after
// three consecutive errors.
func (c *CloudflareConnector) Probe(ctx context.Context) health.ProbeResult {
	start := time.Now()

	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.VerifyToken(ctx)
	})

	latency := time.Since(start).Milliseconds()

	if err != nil {
		errMsg := err.Error()
		if errors.Is(err, gobreaker.ErrOpenState) {
			errMsg = "circuit open"
		}
		return health.ProbeResult{
			Name:      health.ProbeCloudflare,
			OK:        false,
			LatencyMs: latency,
			Error:     errMsg,
		}
	}

	return health.ProbeResult{
		Name:      health.ProbeCloudflare,
		OK:        true,
		LatencyMs: latency,
	}
}

// listAllRecords pages through the zone's records.
func (c *CloudflareConnector) listAllRecords(ctx context.Context, rc *cloudflare.ResourceContainer) ([]cloudflare.DNSRecord, error) {
	var all []cloudflare.DNSRecord
	params := cloudflare.ListDNSRecordsParams{
		ResultInfo: cloudflare.ResultInfo{Page: 1, PerPage: 100},
	}

	for {
		page, info, err := c.api.ListDNSRecords(ctx, rc, params)
		if err != nil {
			return nil, fmt.Errorf("failed to list DNS records: %w", err)
		}
		all = append(all, page...)

		if info == nil || params.ResultInfo.Page >= info.TotalPages {
			break
		}
		params.ResultInfo.Page++
	}

	return all, nil
}

// findRecord locates the existing record the desired one converges on. For
// singleton types the name alone matches; for multi-value types the content
// must match too.
func findRecord(existing []cloudflare.DNSRecord, desired provision.DNSRecord) (*cloudflare.DNSRecord, bool) {
	multiValue := desired.Type == provision.RecordTypeTXT || desired.Type == provision.RecordTypeMX

	for i := range existing {
		candidate := &existing[i]
		if candidate.Type != desired.Type || !strings.EqualFold(candidate.Name, desired.Name) {
			continue
		}

		if candidate.Content == desired.Content {
			return candidate, true
		}
		if !multiValue {
			return candidate, false
		}
	}

	return nil, false
}

func ttlOrAuto(ttl int) int {
	if ttl <= 0 {
		return provision.TTLAuto
	}
	return ttl
}

func priorityFor(record provision.DNSRecord) *uint16 {
	if record.Type != provision.RecordTypeMX {
		return nil
	}
	priority := record.Priority
	return &priority
}
