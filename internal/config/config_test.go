package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Lookup.CountryCode != "91" {
		t.Errorf("Lookup.CountryCode = %q, want 91", cfg.Lookup.CountryCode)
	}
	if cfg.Lookup.PlatformDelay != 600*time.Millisecond {
		t.Errorf("Lookup.PlatformDelay = %v, want 600ms", cfg.Lookup.PlatformDelay)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8085")
	t.Setenv("LOOKUP_COUNTRY_CODE", "1")
	t.Setenv("LOOKUP_PLATFORM_DELAY_MS", "100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 8085 {
		t.Errorf("Server.Port = %d, want 8085", cfg.Server.Port)
	}
	if cfg.Lookup.CountryCode != "1" {
		t.Errorf("Lookup.CountryCode = %q, want 1", cfg.Lookup.CountryCode)
	}
	if cfg.Lookup.PlatformDelay != 100*time.Millisecond {
		t.Errorf("Lookup.PlatformDelay = %v, want 100ms", cfg.Lookup.PlatformDelay)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"empty country code", func(c *Config) { c.Lookup.CountryCode = "" }, true},
		{"non-digit country code", func(c *Config) { c.Lookup.CountryCode = "+91" }, true},
		{"empty search url", func(c *Config) { c.Lookup.SearchURL = "" }, true},
		{"history without host", func(c *Config) {
			c.History.Enabled = true
			c.Postgres.Host = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
