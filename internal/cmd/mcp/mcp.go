// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/content/notion"
	entrypoint "github.com/atelierfolio/atelier/internal/platform/cmd"
	"github.com/atelierfolio/atelier/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr        string        `env:"ATELIER_MCP_HTTP_ADDR"     envDefault:"localhost:8089"`
	Transport       string        `env:"ATELIER_MCP_TRANSPORT"     envDefault:"stdio"`
	NotionAPIKey    string        `env:"ATELIER_NOTION_API_KEY"`
	NotionBaseURL   string        `env:"ATELIER_NOTION_BASE_URL"`
	ContentCacheTTL time.Duration `env:"ATELIER_CONTENT_CACHE_TTL" envDefault:"5m"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.ParseConfig(fs, args, bindFlags)
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.NotionBaseURL, "notion-base-url", cfg.NotionBaseURL, "Notion API base URL")
	fs.DurationVar(&cfg.ContentCacheTTL, "cache-ttl", cfg.ContentCacheTTL, "how long resume content stays cached")
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	mcpConfig, err := serviceConfig(cfg)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, mcpConfig)
	})
}

func serviceConfig(cfg Config) (service.Config, error) {
	transport, err := service.ParseTransport(cfg.Transport)
	if err != nil {
		return service.Config{}, fmt.Errorf("parse transport: %w", err)
	}
	return service.Config{
		Transport: transport,
		HTTPAddr:  cfg.HTTPAddr,
		Content:   workspaceSource(cfg),
		CacheTTL:  cfg.ContentCacheTTL,
	}, nil
}

func workspaceSource(cfg Config) content.Source {
	if strings.TrimSpace(cfg.NotionAPIKey) == "" {
		return nil
	}
	client := notion.NewClient(notion.Config{APIKey: cfg.NotionAPIKey, BaseURL: cfg.NotionBaseURL})
	return notion.NewScanner(client, notion.WithTTL(cfg.ContentCacheTTL))
}
