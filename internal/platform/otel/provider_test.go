package otel_test

import (
	"context"
	"testing"

	"github.com/atelierfolio/atelier/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("ATELIER_OTEL_ENDPOINT", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("ATELIER_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("ATELIER_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsMalformedSettings(t *testing.T) {
	t.Setenv("ATELIER_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("ATELIER_OTEL_SAMPLE_RATIO", "half")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected settings error")
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens.
	t.Setenv("ATELIER_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("ATELIER_OTEL_SAMPLE_RATIO", "0.5")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSettingsActive(t *testing.T) {
	tests := []struct {
		name     string
		settings otel.Settings
		want     bool
	}{
		{"no endpoint", otel.Settings{Enabled: true}, false},
		{"disabled", otel.Settings{Endpoint: "http://x", Enabled: false}, false},
		{"active", otel.Settings{Endpoint: "http://x", Enabled: true}, true},
	}
	for _, tt := range tests {
		if got := tt.settings.Active(); got != tt.want {
			t.Fatalf("%s: Active = %v, want %v", tt.name, got, tt.want)
		}
	}
}
