package budget

import (
	"fmt"
)

// Violation kind constants
const (
	KindMetric   = "metric"
	KindResource = "resource"
)

// Metric name constants, matching Lighthouse audit ids.
const (
	MetricFirstContentfulPaint   = "first-contentful-paint"
	MetricLargestContentfulPaint = "largest-contentful-paint"
	MetricTotalBlockingTime      = "total-blocking-time"
	MetricCumulativeLayoutShift  = "cumulative-layout-shift"
	MetricInteractive            = "interactive"
)

// Resource type constants, matching Lighthouse resource-summary types.
const (
	ResourceScript     = "script"
	ResourceStylesheet = "stylesheet"
	ResourceImage      = "image"
	ResourceFont       = "font"
	ResourceTotal      = "total"
)

// Budget holds the limits a Lighthouse report is checked against. Metric
// limits are milliseconds except cumulative-layout-shift, which is unitless.
// Resource limits are transfer sizes in KB.
type Budget struct {
	Metrics    map[string]float64 `yaml:"metrics"`
	ResourceKB map[string]int64   `yaml:"resource_kb"`
}

// DefaultBudget returns the performance budget for the booking site. The
// metric limits follow the "good" thresholds of the web vitals they track.
func DefaultBudget() *Budget {
	return &Budget{
		Metrics: map[string]float64{
			MetricFirstContentfulPaint:   1800,
			MetricLargestContentfulPaint: 2500,
			MetricTotalBlockingTime:      200,
			MetricCumulativeLayoutShift:  0.1,
			MetricInteractive:            3800,
		},
		ResourceKB: map[string]int64{
			ResourceScript:     350,
			ResourceStylesheet: 100,
			ResourceImage:      900,
			ResourceTotal:      1600,
		},
	}
}

// Violation is one budget limit the report exceeded.
type Violation struct {
	Kind   string  `json:"kind"`
	Name   string  `json:"name"`
	Actual float64 `json:"actual"`
	Limit  float64 `json:"limit"`
}

func (v Violation) String() string {
	unit := "ms"
	if v.Kind == KindResource {
		unit = "KB"
	}
	if v.Name == MetricCumulativeLayoutShift {
		unit = ""
	}
	return fmt.Sprintf("%s %s: %.1f%s over limit %.1f%s", v.Kind, v.Name, v.Actual, unit, v.Limit, unit)
}

// Result is the outcome of evaluating one report against a budget.
type Result struct {
	URL        string      `json:"url,omitempty"`
	Score      float64     `json:"score"`
	Violations []Violation `json:"violations"`
}

// Ok reports whether the report stayed inside the budget.
func (r *Result) Ok() bool {
	return len(r.Violations) == 0
}
