package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.List.PageSize != 10 {
		t.Errorf("PageSize = %d", cfg.List.PageSize)
	}
	if cfg.List.SortBy != "createdAt" || cfg.List.SortDir != "desc" {
		t.Errorf("sort defaults = %s %s", cfg.List.SortBy, cfg.List.SortDir)
	}
	if cfg.Session.File == "" {
		t.Error("session file not defaulted")
	}
	if cfg.Stub.Port != "8080" {
		t.Errorf("stub port = %q", cfg.Stub.Port)
	}
	if cfg.Stub.AccessExpiry != 15*time.Minute {
		t.Errorf("access expiry = %v", cfg.Stub.AccessExpiry)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://clinic.internal/api")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("DEFAULT_PAGE_SIZE", "25")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.API.BaseURL != "http://clinic.internal/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.List.PageSize != 25 {
		t.Errorf("PageSize = %d", cfg.List.PageSize)
	}
}
