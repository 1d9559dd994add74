// Package vitals validates and rates Core Web Vitals reports sent by the
// portfolio front end.
package vitals

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Metric names a Core Web Vital.
type Metric string

const (
	LCP  Metric = "LCP"
	INP  Metric = "INP"
	CLS  Metric = "CLS"
	FCP  Metric = "FCP"
	TTFB Metric = "TTFB"
)

// Metrics lists the accepted metrics.
func Metrics() []Metric {
	return []Metric{LCP, INP, CLS, FCP, TTFB}
}

// ParseMetric accepts metric names in any case.
func ParseMetric(raw string) (Metric, bool) {
	m := Metric(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Metrics() {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// Rating buckets a metric value.
type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
)

type thresholds struct{ good, poor float64 }

// Millisecond thresholds, except CLS which is unitless.
var limits = map[Metric]thresholds{
	LCP:  {2500, 4000},
	INP:  {200, 500},
	CLS:  {0.1, 0.25},
	FCP:  {1800, 3000},
	TTFB: {800, 1800},
}

// Rate buckets value for metric.
func Rate(metric Metric, value float64) Rating {
	t, ok := limits[metric]
	if !ok {
		return RatingPoor
	}
	switch {
	case value <= t.good:
		return RatingGood
	case value <= t.poor:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}

// Report is one metric sample from one page view.
type Report struct {
	Metric     Metric    `json:"name"`
	Value      float64   `json:"value"`
	Rating     Rating    `json:"rating"`
	Path       string    `json:"path"`
	Room       string    `json:"room,omitempty"`
	Tier       string    `json:"tier,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// ValidationError explains why a report was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid vitals report: " + e.Reason
}

const maxPathLength = 512

// Normalize validates r, fills the rating and timestamp, and cleans the path.
func Normalize(r Report, now time.Time) (Report, error) {
	metric, ok := ParseMetric(string(r.Metric))
	if !ok {
		return Report{}, &ValidationError{Reason: fmt.Sprintf("unknown metric %q", r.Metric)}
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) || r.Value < 0 {
		return Report{}, &ValidationError{Reason: "value must be a non-negative number"}
	}
	r.Metric = metric
	r.Path = strings.TrimSpace(r.Path)
	if r.Path == "" {
		r.Path = "/"
	}
	if len(r.Path) > maxPathLength {
		return Report{}, &ValidationError{Reason: "path is too long"}
	}
	r.Rating = Rate(metric, r.Value)
	if r.RecordedAt.IsZero() {
		r.RecordedAt = now
	}
	r.RecordedAt = r.RecordedAt.UTC()
	return r, nil
}

// Summary aggregates samples of one metric.
type Summary struct {
	Metric  Metric  `json:"name"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Rating  Rating  `json:"rating"`
}
