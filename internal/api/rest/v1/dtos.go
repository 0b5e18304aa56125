package v1

import "time"

// BasePath is the route prefix shared by every v1 endpoint.
const BasePath = "/api/v1/ops"

// ErrorResponse carries a human-readable failure message
type ErrorResponse struct {
	Message *string `json:"message,omitempty"`
}

// InfoResponse carries a human-readable status message
type InfoResponse struct {
	Message *string `json:"message,omitempty"`
}

// ProbeResponse is the outcome of a single vendor dependency probe
type ProbeResponse struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// CheckupResponse aggregates the probes of a deep health check
type CheckupResponse struct {
	Healthy bool            `json:"healthy"`
	Probes  []ProbeResponse `json:"probes"`
}

// MigrationStatusResponse is the ledger state of one migration script
type MigrationStatusResponse struct {
	Name      string     `json:"name"`
	State     string     `json:"state"`
	Checksum  string     `json:"checksum"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
}

// MismatchResponse describes a column whose live definition deviates from the catalog
type MismatchResponse struct {
	Table    string `json:"table"`
	Column   string `json:"column"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// DriftResponse is the outcome of comparing the live schema with the expected catalog
type DriftResponse struct {
	Clean                 bool               `json:"clean"`
	MissingTables         []string           `json:"missingTables"`
	UnexpectedTables      []string           `json:"unexpectedTables"`
	MissingColumns        []string           `json:"missingColumns"`
	TypeMismatches        []MismatchResponse `json:"typeMismatches"`
	NullabilityMismatches []MismatchResponse `json:"nullabilityMismatches"`
}

// AuditReportResponse aggregates one category of the audit trail
type AuditReportResponse struct {
	Category   string         `json:"category"`
	Events     int            `json:"events"`
	Malformed  int            `json:"malformed"`
	ByAction   map[string]int `json:"byAction"`
	BySeverity map[string]int `json:"bySeverity"`
	ByActor    map[string]int `json:"byActor"`
	PerDay     map[string]int `json:"perDay"`
	First      time.Time      `json:"first,omitempty"`
	Last       time.Time      `json:"last,omitempty"`
}

// SettingResponse is a seeded platform setting; sensitive values arrive redacted
type SettingResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Category  string `json:"category"`
	Sensitive bool   `json:"sensitive"`
}
