package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8088"`
	Mode    string `env:"CMD_TEST_MODE"    envDefault:"server"`
}

func bindTestFlags(fs *flag.FlagSet, cfg *testConfig) {
	fs.StringVar(&cfg.Address, "address", cfg.Address, "address")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("CMD_TEST_MODE", "env-mode")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-address", "flag:9001"}, bindTestFlags)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Address != "flag:9001" {
		t.Fatalf("expected flag value for address, got %q", cfg.Address)
	}
	if cfg.Mode != "env-mode" {
		t.Fatalf("expected env value for mode, got %q", cfg.Mode)
	}
}

func TestParseConfigDefaultsWithoutBinder(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig[testConfig](fs, nil, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Address != "127.0.0.1:8088" || cfg.Mode != "server" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigRejectsBadInput(t *testing.T) {
	if _, err := ParseConfig[testConfig](nil, nil, nil); err == nil {
		t.Fatal("expected nil flag set to be rejected")
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(discard{})
	if _, err := ParseConfig(fs, []string{"-unknown"}, bindTestFlags); err == nil {
		t.Fatal("expected unknown flag to fail")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceSite, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("ATELIER_OTEL_ENABLED", "false")
	want := errors.New("boom")
	ran := false
	err := RunWithTelemetry(context.Background(), ServicePreview, func(context.Context) error {
		ran = true
		return want
	})
	if !ran {
		t.Fatal("expected run function to be called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
