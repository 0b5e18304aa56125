package budget

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report holds the parts of a Lighthouse JSON report the budget checker
// reads: the performance score, the tracked metric values and the
// resource-summary transfer sizes in bytes.
type Report struct {
	URL       string
	Score     float64
	Metrics   map[string]float64
	Resources map[string]int64
}

// lighthouseJSON mirrors the fragments of the Lighthouse report format the
// checker consumes. Everything else in the report is ignored.
type lighthouseJSON struct {
	RequestedURL string `json:"requestedUrl"`
	FinalURL     string `json:"finalUrl"`
	Categories   struct {
		Performance struct {
			Score *float64 `json:"score"`
		} `json:"performance"`
	} `json:"categories"`
	Audits map[string]lighthouseAudit `json:"audits"`
}

type lighthouseAudit struct {
	NumericValue *float64 `json:"numericValue"`
	Details      struct {
		Items []struct {
			ResourceType string `json:"resourceType"`
			TransferSize int64  `json:"transferSize"`
		} `json:"items"`
	} `json:"details"`
}

// trackedMetrics are the audit ids the checker extracts numeric values for.
var trackedMetrics = []string{
	MetricFirstContentfulPaint,
	MetricLargestContentfulPaint,
	MetricTotalBlockingTime,
	MetricCumulativeLayoutShift,
	MetricInteractive,
}

// ParseReport reads a Lighthouse JSON report. Audits absent from the report
// are simply absent from the result; malformed JSON is an error.
func ParseReport(r io.Reader) (*Report, error) {
	var raw lighthouseJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse lighthouse report: %w", err)
	}

	report := &Report{
		URL:       raw.RequestedURL,
		Metrics:   make(map[string]float64),
		Resources: make(map[string]int64),
	}
	if report.URL == "" {
		report.URL = raw.FinalURL
	}
	if raw.Categories.Performance.Score != nil {
		report.Score = *raw.Categories.Performance.Score
	}

	for _, id := range trackedMetrics {
		audit, ok := raw.Audits[id]
		if !ok || audit.NumericValue == nil {
			continue
		}
		report.Metrics[id] = *audit.NumericValue
	}

	if summary, ok := raw.Audits["resource-summary"]; ok {
		for _, item := range summary.Details.Items {
			if item.ResourceType == "" {
				continue
			}
			report.Resources[item.ResourceType] = item.TransferSize
		}
	}

	return report, nil
}

// Evaluate compares a parsed report against the budget and returns every
// limit the report exceeded. Metrics missing from the report are skipped, not
// violations.
func Evaluate(report *Report, b *Budget) *Result {
	result := &Result{
		URL:        report.URL,
		Score:      report.Score,
		Violations: []Violation{},
	}

	for _, name := range trackedMetrics {
		limit, budgeted := b.Metrics[name]
		if !budgeted {
			continue
		}
		actual, measured := report.Metrics[name]
		if !measured {
			continue
		}
		if actual > limit {
			result.Violations = append(result.Violations, Violation{
				Kind:   KindMetric,
				Name:   name,
				Actual: actual,
				Limit:  limit,
			})
		}
	}

	for _, name := range []string{ResourceScript, ResourceStylesheet, ResourceImage, ResourceFont, ResourceTotal} {
		limitKB, budgeted := b.ResourceKB[name]
		if !budgeted {
			continue
		}
		bytes, measured := report.Resources[name]
		if !measured {
			continue
		}
		actualKB := float64(bytes) / 1024.0
		if actualKB > float64(limitKB) {
			result.Violations = append(result.Violations, Violation{
				Kind:   KindResource,
				Name:   name,
				Actual: actualKB,
				Limit:  float64(limitKB),
			})
		}
	}

	return result
}
