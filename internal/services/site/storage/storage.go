// Package storage declares persistence for data the site collects from
// visitors. Portfolio content is never stored; it always comes from the
// workspace or built-in samples.
package storage

import (
	"context"
	"time"

	"github.com/atelierfolio/atelier/internal/services/site/vitals"
)

// VitalsStore records Core Web Vitals reports and summarizes them.
type VitalsStore interface {
	Close() error
	RecordVital(ctx context.Context, report vitals.Report) error
	SummarizeVitals(ctx context.Context, since time.Time) ([]vitals.Summary, error)
}
