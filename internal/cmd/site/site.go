// Package site parses site command flags and composes the site server.
package site

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/content/notion"
	entrypoint "github.com/atelierfolio/atelier/internal/platform/cmd"
	server "github.com/atelierfolio/atelier/internal/services/site/app"
	"github.com/atelierfolio/atelier/internal/services/site/storage/sqlite"
)

// Config holds site command configuration.
type Config struct {
	HTTPAddr          string        `env:"ATELIER_HTTP_ADDR"                envDefault:"localhost:8088"`
	NotionAPIKey      string        `env:"ATELIER_NOTION_API_KEY"`
	NotionBaseURL     string        `env:"ATELIER_NOTION_BASE_URL"`
	PageHiring        string        `env:"ATELIER_NOTION_PAGE_HIRING"`
	PageProjects      string        `env:"ATELIER_NOTION_PAGE_PROJECTS"`
	PageCollaborators string        `env:"ATELIER_NOTION_PAGE_COLLABORATORS"`
	VitalsDBPath      string        `env:"ATELIER_VITALS_DB_PATH"`
	ContentCacheTTL   time.Duration `env:"ATELIER_CONTENT_CACHE_TTL"        envDefault:"5m"`
	SceneTick         time.Duration `env:"ATELIER_SCENE_TICK"               envDefault:"50ms"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.ParseConfig(fs, args, bindFlags)
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "site HTTP listen address")
	fs.StringVar(&cfg.NotionBaseURL, "notion-base-url", cfg.NotionBaseURL, "Notion API base URL")
	fs.StringVar(&cfg.VitalsDBPath, "vitals-db", cfg.VitalsDBPath, "SQLite path for web vitals; empty disables collection")
	fs.DurationVar(&cfg.ContentCacheTTL, "cache-ttl", cfg.ContentCacheTTL, "how long portfolio and resume content stay cached")
	fs.DurationVar(&cfg.SceneTick, "scene-tick", cfg.SceneTick, "scene websocket mood interval")
}

// Run opens the site collaborators and serves until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSite, func(ctx context.Context) error {
		services, err := buildServices(ctx, cfg)
		if err != nil {
			return err
		}
		if err := server.Run(ctx, server.Config{
			HTTPAddr: cfg.HTTPAddr,
			Services: services,
		}); err != nil {
			return fmt.Errorf("serve site: %w", err)
		}
		return nil
	})
}

// buildServices wires the workspace client when an API key is set and the
// vitals store when a database path is set.
func buildServices(ctx context.Context, cfg Config) (server.Services, error) {
	services := server.Services{
		PageIDs: map[content.PageKind]string{
			content.PageHiring:        strings.TrimSpace(cfg.PageHiring),
			content.PageProjects:      strings.TrimSpace(cfg.PageProjects),
			content.PageCollaborators: strings.TrimSpace(cfg.PageCollaborators),
		},
		CacheTTL:  cfg.ContentCacheTTL,
		SceneTick: cfg.SceneTick,
	}

	if strings.TrimSpace(cfg.NotionAPIKey) != "" {
		client := notion.NewClient(notion.Config{APIKey: cfg.NotionAPIKey, BaseURL: cfg.NotionBaseURL})
		services.NotionConfigured = true
		services.Pages = client
		services.Content = notion.NewScanner(client, notion.WithTTL(cfg.ContentCacheTTL))
	}

	if path := strings.TrimSpace(cfg.VitalsDBPath); path != "" {
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return server.Services{}, fmt.Errorf("open vitals store: %w", err)
		}
		services.Vitals = store
	}
	return services, nil
}
