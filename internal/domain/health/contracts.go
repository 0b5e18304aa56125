package health

import (
	"context"
)

// Probe name constants
const (
	ProbePostgres   = "postgres"
	ProbeBaaSAuth   = "baas-auth"
	ProbeCloudflare = "cloudflare"
	ProbeSendGrid   = "sendgrid"
)

// ProbeResult is one dependency's health as reported by its prober.
type ProbeResult struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// Prober is implemented by every vendor connector the doctor checks.
type Prober interface {
	Probe(ctx context.Context) ProbeResult
}

// CheckupResult aggregates all probe results from one doctor run.
type CheckupResult struct {
	Probes []ProbeResult `json:"probes"`
}

// Healthy reports whether every probe succeeded.
func (r *CheckupResult) Healthy() bool {
	for _, p := range r.Probes {
		if !p.OK {
			return false
		}
	}
	return true
}

// DoctorService runs all dependency probes.
type DoctorService interface {
	// Run probes every registered dependency concurrently and returns the
	// collected results sorted by probe name. A failing probe never aborts
	// the others.
	Run(ctx context.Context) (*CheckupResult, error)
}
