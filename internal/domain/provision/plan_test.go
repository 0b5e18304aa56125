//go:build unit
// +build unit

package provision

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDNSRecord_Validate(t *testing.T) {
	tests := []struct {
		name      string
		record    DNSRecord
		shouldErr bool
	}{
		{"valid cname", DNSRecord{Type: "CNAME", Name: "www.samiatarot.com", Content: "samiatarot.com", TTL: TTLAuto}, false},
		{"valid txt", DNSRecord{Type: "TXT", Name: "samiatarot.com", Content: "v=spf1 include:sendgrid.net ~all", TTL: 3600}, false},
		{"valid mx", DNSRecord{Type: "MX", Name: "samiatarot.com", Content: "mx.example.net", TTL: 3600, Priority: 10}, false},
		{"unknown type", DNSRecord{Type: "SRV", Name: "x", Content: "y"}, true},
		{"missing content", DNSRecord{Type: "A", Name: "samiatarot.com"}, true},
		{"missing name", DNSRecord{Type: "A", Content: "203.0.113.7"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestDefaultRecordPlan(t *testing.T) {
	records := DefaultRecordPlan("samiatarot.com", "samia-tarot.pages.dev")
	require.Len(t, records, 3)

	for _, r := range records {
		require.NoError(t, r.Validate())
	}

	assert.Equal(t, RecordTypeCNAME, records[0].Type)
	assert.Equal(t, "samiatarot.com", records[0].Name)
	assert.Equal(t, "samia-tarot.pages.dev", records[0].Content)
	assert.True(t, records[0].Proxied)

	assert.Equal(t, "www.samiatarot.com", records[1].Name)
	assert.Equal(t, RecordTypeTXT, records[2].Type)
	assert.Contains(t, records[2].Content, "spf1")
}

func TestMergePlans_DropsDuplicates(t *testing.T) {
	base := DefaultRecordPlan("samiatarot.com", "samia-tarot.pages.dev")
	extra := []DNSRecord{
		{Type: "CNAME", Name: "em123.samiatarot.com", Content: "u123.wl.sendgrid.net", TTL: TTLAuto},
		// duplicate of the base SPF record
		{Type: "TXT", Name: "samiatarot.com", Content: "v=spf1 include:sendgrid.net ~all", TTL: 3600},
	}

	merged := MergePlans(base, extra)
	require.Len(t, merged, 4)
	assert.Equal(t, "em123.samiatarot.com", merged[3].Name)
}

func TestRenderInstructions(t *testing.T) {
	records := []DNSRecord{
		{Type: "CNAME", Name: "em123.samiatarot.com", Content: "u123.wl.sendgrid.net", TTL: TTLAuto},
		{Type: "MX", Name: "samiatarot.com", Content: "mx.sendgrid.net", TTL: 3600, Priority: 10},
	}

	md := RenderInstructions("samiatarot.com", records, time.Date(2024, 11, 2, 12, 0, 0, 0, time.UTC))

	assert.True(t, strings.HasPrefix(md, "# DNS records for samiatarot.com"))
	assert.Contains(t, md, "2024-11-02")
	assert.Contains(t, md, "| CNAME | em123.samiatarot.com | u123.wl.sendgrid.net | auto |")
	assert.Contains(t, md, "| MX | samiatarot.com | 10 mx.sendgrid.net | 3600 |")
	assert.Contains(t, md, "provision email")
}
