//go:build unit
// +build unit

package connector

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudflare/cloudflare-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/provision"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/breaker"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	pkgTesting "github.com/nabilgpt/samia-tarot-ops/internal/pkg/testing"
)

// fakeCloudflareAPI implements cloudflareAPI with canned zone state.
type fakeCloudflareAPI struct {
	zoneErr     error
	listErr     error
	existing    []cloudflare.DNSRecord
	created     []cloudflare.CreateDNSRecordParams
	updated     []cloudflare.UpdateDNSRecordParams
	createErr   error
	updateErr   error
	tokenStatus string
	tokenErr    error
}

func (f *fakeCloudflareAPI) ZoneIDByName(_ string) (string, error) {
	if f.zoneErr != nil {
		return "", f.zoneErr
	}
	return "zone-id", nil
}

func (f *fakeCloudflareAPI) ListDNSRecords(_ context.Context, _ *cloudflare.ResourceContainer, _ cloudflare.ListDNSRecordsParams) ([]cloudflare.DNSRecord, *cloudflare.ResultInfo, error) {
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	return f.existing, &cloudflare.ResultInfo{Page: 1, TotalPages: 1}, nil
}

func (f *fakeCloudflareAPI) CreateDNSRecord(_ context.Context, _ *cloudflare.ResourceContainer, params cloudflare.CreateDNSRecordParams) (cloudflare.DNSRecord, error) {
	if f.createErr != nil {
		return cloudflare.DNSRecord{}, f.createErr
	}
	f.created = append(f.created, params)
	return cloudflare.DNSRecord{ID: "new-id", Type: params.Type, Name: params.Name, Content: params.Content}, nil
}

func (f *fakeCloudflareAPI) UpdateDNSRecord(_ context.Context, _ *cloudflare.ResourceContainer, params cloudflare.UpdateDNSRecordParams) (cloudflare.DNSRecord, error) {
	if f.updateErr != nil {
		return cloudflare.DNSRecord{}, f.updateErr
	}
	f.updated = append(f.updated, params)
	return cloudflare.DNSRecord{ID: params.ID, Type: params.Type, Name: params.Name, Content: params.Content}, nil
}

func (f *fakeCloudflareAPI) VerifyAPIToken(_ context.Context) (cloudflare.APITokenVerifyBody, error) {
	if f.tokenErr != nil {
		return cloudflare.APITokenVerifyBody{}, f.tokenErr
	}
	status := f.tokenStatus
	if status == "" {
		status = "active"
	}
	return cloudflare.APITokenVerifyBody{Status: status}, nil
}

func makeCloudflareConnector(t *testing.T, api cloudflareAPI, breakerName string) *CloudflareConnector {
	t.Helper()

	return &CloudflareConnector{
		settings: &config.CloudflareSettings{Provider: config.CloudflareDNSProvider, APIToken: "token", ZoneName: TestZoneName},
		api:      api,
		cb:       breaker.New(breakerName),
		logger:   pkgTesting.SetupTestLogger(t),
	}
}

func TestCloudflareConnector_EnsureRecords_CreatesMissing(t *testing.T) {
	api := &fakeCloudflareAPI{}
	connector := makeCloudflareConnector(t, api, "cf-create")

	records := provision.DefaultRecordPlan("samiatarot.com", "app.hosting.example")
	results, err := connector.EnsureRecords(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, result := range results {
		assert.NoError(t, result.Err)
		assert.Equal(t, provision.ActionCreated, result.Action)
	}
	assert.Len(t, api.created, 3)
}

func TestCloudflareConnector_EnsureRecords_KeepsMatching(t *testing.T) {
	api := &fakeCloudflareAPI{
		existing: []cloudflare.DNSRecord{
			{ID: "r1", Type: "CNAME", Name: "samiatarot.com", Content: "app.hosting.example"},
		},
	}
	connector := makeCloudflareConnector(t, api, "cf-keep")

	records := []provision.DNSRecord{
		{Type: provision.RecordTypeCNAME, Name: "samiatarot.com", Content: "app.hosting.example", TTL: provision.TTLAuto, Proxied: true},
	}
	results, err := connector.EnsureRecords(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, provision.ActionKept, results[0].Action)
	assert.Empty(t, api.created)
	assert.Empty(t, api.updated)
}

func TestCloudflareConnector_EnsureRecords_UpdatesChangedSingleton(t *testing.T) {
	api := &fakeCloudflareAPI{
		existing: []cloudflare.DNSRecord{
			{ID: "r1", Type: "CNAME", Name: "SAMIATAROT.COM", Content: "old.hosting.example"},
		},
	}
	connector := makeCloudflareConnector(t, api, "cf-update")

	records := []provision.DNSRecord{
		{Type: provision.RecordTypeCNAME, Name: "samiatarot.com", Content: "app.hosting.example", TTL: provision.TTLAuto, Proxied: true},
	}
	results, err := connector.EnsureRecords(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, provision.ActionUpdated, results[0].Action)

	require.Len(t, api.updated, 1)
	assert.Equal(t, "r1", api.updated[0].ID)
	assert.Equal(t, "app.hosting.example", api.updated[0].Content)
}

func TestCloudflareConnector_EnsureRecords_TXTNeverUpdatesOtherValues(t *testing.T) {
	api := &fakeCloudflareAPI{
		existing: []cloudflare.DNSRecord{
			{ID: "r1", Type: "TXT", Name: "samiatarot.com", Content: "google-site-verification=abc"},
		},
	}
	connector := makeCloudflareConnector(t, api, "cf-txt")

	records := []provision.DNSRecord{
		{Type: provision.RecordTypeTXT, Name: "samiatarot.com", Content: "v=spf1 include:sendgrid.net ~all", TTL: 3600},
	}
	results, err := connector.EnsureRecords(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// The unrelated verification TXT survives; the SPF record is added.
	assert.Equal(t, provision.ActionCreated, results[0].Action)
	assert.Empty(t, api.updated)
	require.Len(t, api.created, 1)
	assert.Equal(t, "v=spf1 include:sendgrid.net ~all", api.created[0].Content)
}

func TestCloudflareConnector_EnsureRecords_CollectsPerRecordFailures(t *testing.T) {
	api := &fakeCloudflareAPI{createErr: errors.New("rate limited")}
	connector := makeCloudflareConnector(t, api, "cf-fail")

	records := []provision.DNSRecord{
		{Type: provision.RecordTypeCNAME, Name: "samiatarot.com", Content: "app.hosting.example"},
		{Type: "BOGUS", Name: "samiatarot.com", Content: "x"},
	}
	results, err := connector.EnsureRecords(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.ErrorContains(t, results[0].Err, "rate limited")
	assert.ErrorContains(t, results[1].Err, "validation failed")
}

func TestCloudflareConnector_EnsureRecords_UnknownZone(t *testing.T) {
	api := &fakeCloudflareAPI{zoneErr: errors.New("zone could not be found")}
	connector := makeCloudflareConnector(t, api, "cf-zone")

	_, err := connector.EnsureRecords(context.Background(), provision.DefaultRecordPlan("samiatarot.com", "app.hosting.example"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve zone")
}

func TestCloudflareConnector_VerifyToken(t *testing.T) {
	connector := makeCloudflareConnector(t, &fakeCloudflareAPI{}, "cf-token-ok")
	assert.NoError(t, connector.VerifyToken(context.Background()))

	connector = makeCloudflareConnector(t, &fakeCloudflareAPI{tokenStatus: "disabled"}, "cf-token-disabled")
	err := connector.VerifyToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestCloudflareConnector_Probe(t *testing.T) {
	connector := makeCloudflareConnector(t, &fakeCloudflareAPI{}, "cf-probe-ok")
	result := connector.Probe(context.Background())
	assert.Equal(t, health.ProbeCloudflare, result.Name)
	assert.True(t, result.OK)

	connector = makeCloudflareConnector(t, &fakeCloudflareAPI{tokenErr: errors.New("invalid token")}, "cf-probe-fail")
	result = connector.Probe(context.Background())
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "invalid token")
}
