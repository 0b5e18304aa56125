package provision

import (
	"fmt"
)

// DefaultRecordPlan returns the base DNS records for serving the web app on
// the apex and www of the zone. appHost is the hosting platform's target
// hostname. Email authentication records come from the provider at runtime
// and are appended by the caller.
func DefaultRecordPlan(zone, appHost string) []DNSRecord {
	return []DNSRecord{
		{Type: RecordTypeCNAME, Name: zone, Content: appHost, TTL: TTLAuto, Proxied: true},
		{Type: RecordTypeCNAME, Name: "www." + zone, Content: zone, TTL: TTLAuto, Proxied: true},
		{Type: RecordTypeTXT, Name: zone, Content: "v=spf1 include:sendgrid.net ~all", TTL: 3600},
	}
}

// MergePlans appends the provider-issued records to the base plan, dropping
// duplicates by (type, name, content).
func MergePlans(base, extra []DNSRecord) []DNSRecord {
	seen := make(map[string]bool, len(base))
	key := func(r DNSRecord) string {
		return fmt.Sprintf("%s|%s|%s", r.Type, r.Name, r.Content)
	}

	merged := make([]DNSRecord, 0, len(base)+len(extra))
	for _, r := range base {
		seen[key(r)] = true
		merged = append(merged, r)
	}
	for _, r := range extra {
		if seen[key(r)] {
			continue
		}
		seen[key(r)] = true
		merged = append(merged, r)
	}

	return merged
}
