package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/atelierfolio/atelier/internal/platform/storage/sqlitemigrate"
	sitestorage "github.com/atelierfolio/atelier/internal/services/site/storage"
	"github.com/atelierfolio/atelier/internal/services/site/storage/sqlite/migrations"
	"github.com/atelierfolio/atelier/internal/services/site/vitals"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for vitals reports.
type Store struct {
	sqlDB *sql.DB
}

var _ sitestorage.VitalsStore = (*Store)(nil)

// Open opens and migrates a site SQLite store.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordVital appends one normalized report.
func (s *Store) RecordVital(ctx context.Context, report vitals.Report) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if report.Metric == "" {
		return fmt.Errorf("metric is required")
	}
	if report.RecordedAt.IsZero() {
		report.RecordedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO vitals_reports (metric, value, rating, path, room, tier, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(report.Metric),
		report.Value,
		string(report.Rating),
		report.Path,
		report.Room,
		report.Tier,
		timeToUnixMillis(report.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("record vital: %w", err)
	}
	return nil
}

// SummarizeVitals averages reports recorded at or after since, one row per
// metric in canonical metric order. Metrics without samples are omitted.
func (s *Store) SummarizeVitals(ctx context.Context, since time.Time) ([]vitals.Summary, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT metric, COUNT(*), AVG(value), MAX(value)
		 FROM vitals_reports
		 WHERE recorded_at >= ?
		 GROUP BY metric`,
		timeToUnixMillis(since),
	)
	if err != nil {
		return nil, fmt.Errorf("summarize vitals: %w", err)
	}
	defer rows.Close()

	byMetric := map[vitals.Metric]vitals.Summary{}
	for rows.Next() {
		var metric string
		var summary vitals.Summary
		if err := rows.Scan(&metric, &summary.Count, &summary.Average, &summary.Max); err != nil {
			return nil, fmt.Errorf("scan vitals summary: %w", err)
		}
		summary.Metric = vitals.Metric(metric)
		summary.Rating = vitals.Rate(summary.Metric, summary.Average)
		byMetric[summary.Metric] = summary
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vitals summary: %w", err)
	}

	summaries := make([]vitals.Summary, 0, len(byMetric))
	for _, metric := range vitals.Metrics() {
		if summary, ok := byMetric[metric]; ok {
			summaries = append(summaries, summary)
		}
	}
	return summaries, nil
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}
