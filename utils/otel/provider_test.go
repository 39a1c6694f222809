package otel

import (
	"context"
	"os"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	originalServiceName := os.Getenv("OTEL_SERVICE_NAME")
	originalEnabled := os.Getenv("OTEL_ENABLED")
	defer func() {
		os.Setenv("OTEL_SERVICE_NAME", originalServiceName)
		os.Setenv("OTEL_ENABLED", originalEnabled)
	}()

	t.Run("default values", func(t *testing.T) {
		os.Unsetenv("OTEL_SERVICE_NAME")
		os.Unsetenv("OTEL_ENABLED")

		cfg := ConfigFromEnv()

		if cfg.ServiceName != "csrf-hub" {
			t.Errorf("expected ServiceName 'csrf-hub', got %s", cfg.ServiceName)
		}
		if !cfg.Enabled {
			t.Error("expected Enabled to be true by default")
		}
	})

	t.Run("disabled via env", func(t *testing.T) {
		os.Setenv("OTEL_ENABLED", "false")

		cfg := ConfigFromEnv()

		if cfg.Enabled {
			t.Error("expected Enabled to be false")
		}
	})
}

func TestInitProvider_Disabled(t *testing.T) {
	cfg := Config{
		ServiceName:  "test",
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
	}

	shutdown, err := InitProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		raw          string
		wantHost     string
		wantInsecure bool
		wantErr      bool
	}{
		{"http://localhost:4318", "localhost:4318", true, false},
		{"https://otel-collector:4318", "otel-collector:4318", false, false},
		{"not a url", "", false, true},
	}

	for _, tt := range tests {
		host, insecure, err := parseEndpoint(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseEndpoint(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseEndpoint(%q): unexpected error: %v", tt.raw, err)
			continue
		}
		if host != tt.wantHost || insecure != tt.wantInsecure {
			t.Errorf("parseEndpoint(%q) = (%q, %v), want (%q, %v)", tt.raw, host, insecure, tt.wantHost, tt.wantInsecure)
		}
	}
}
