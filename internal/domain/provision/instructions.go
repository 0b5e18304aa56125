package provision

import (
	"fmt"
	"strings"
	"time"
)

// RenderInstructions produces the manual-setup markdown for a zone that is
// not API-managed: a table of records to add at the registrar plus the
// validation steps. Deterministic apart from the generation date.
func RenderInstructions(domain string, records []DNSRecord, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# DNS records for %s\n\n", domain)
	fmt.Fprintf(&sb, "Generated %s. Add the records below at your DNS provider, then re-run\n", now.UTC().Format("2006-01-02"))
	sb.WriteString("`samia-ops-cli provision email` to validate.\n\n")

	sb.WriteString("| Type | Name | Content | TTL |\n")
	sb.WriteString("|------|------|---------|-----|\n")
	for _, r := range records {
		ttl := "auto"
		if r.TTL > TTLAuto {
			ttl = fmt.Sprintf("%d", r.TTL)
		}
		content := r.Content
		if r.Type == RecordTypeMX {
			content = fmt.Sprintf("%d %s", r.Priority, r.Content)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", r.Type, r.Name, content, ttl)
	}

	sb.WriteString("\n## Checklist\n\n")
	sb.WriteString("1. Add every record above. CNAME contents must not be proxied outside Cloudflare.\n")
	sb.WriteString("2. Wait for propagation (usually minutes, up to 48h at some registrars).\n")
	sb.WriteString("3. Run `samia-ops-cli provision email` again; it validates the domain with SendGrid.\n")
	sb.WriteString("4. Run `samia-ops-cli doctor` to confirm all provider probes pass.\n")

	return sb.String()
}
