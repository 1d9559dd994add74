// Package cmd holds the startup plumbing shared by atelier commands:
// environment-then-flags configuration and telemetry around a run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/atelierfolio/atelier/internal/platform/config"
	"github.com/atelierfolio/atelier/internal/platform/otel"
	"github.com/atelierfolio/atelier/internal/platform/timeouts"
)

// Service names a command in traces and shutdown logs.
type Service string

const (
	ServiceSite    Service = "site"
	ServiceMCP     Service = "mcp"
	ServicePreview Service = "scenepreview"
)

// FlagBinder registers flags that override fields of an env-loaded config.
// Flag defaults must be the current field values.
type FlagBinder[T any] func(fs *flag.FlagSet, cfg *T)

// ParseConfig loads a T from the environment, lets bind register flag
// overrides on fs and parses args. Flags win over the environment.
func ParseConfig[T any](fs *flag.FlagSet, args []string, bind FlagBinder[T]) (T, error) {
	var cfg T
	if fs == nil {
		return cfg, errors.New("flag parser is required")
	}
	if err := config.ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if bind != nil {
		bind(fs, &cfg)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		var zero T
		return zero, err
	}
	return cfg, nil
}

// RunWithTelemetry installs tracing for service, runs run and flushes spans
// once run returns.
func RunWithTelemetry(ctx context.Context, service Service, run func(context.Context) error) error {
	if strings.TrimSpace(string(service)) == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, string(service))
	if err != nil {
		return fmt.Errorf("setup telemetry for %s: %w", service, err)
	}
	defer flushTelemetry(service, shutdown)

	return run(ctx)
}

func flushTelemetry(service Service, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("%s otel shutdown: %v", service, err)
	}
}
