package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NUMERIC_IMPUTATION", "")
	t.Setenv("SUGGEST_PROVIDER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.NumericImputation != "median" {
		t.Fatalf("NumericImputation mismatch: got %q want %q", cfg.NumericImputation, "median")
	}
	if cfg.SuggestProvider != "gemini" {
		t.Fatalf("SuggestProvider mismatch: got %q", cfg.SuggestProvider)
	}
	if cfg.MaxUploadMB != 16 {
		t.Fatalf("MaxUploadMB mismatch: got %d want 16", cfg.MaxUploadMB)
	}
	if cfg.BarTopCategories != 20 {
		t.Fatalf("BarTopCategories mismatch: got %d want 20", cfg.BarTopCategories)
	}
	if cfg.SuggestTimeout != 15*time.Second {
		t.Fatalf("SuggestTimeout mismatch: got %s", cfg.SuggestTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("PORT", "1919")
	t.Setenv("NUMERIC_IMPUTATION", "mean")
	t.Setenv("SUGGEST_PROVIDER", "off")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("BAR_TOP_CATEGORIES", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.NumericImputation != "mean" {
		t.Fatalf("NumericImputation mismatch: got %q", cfg.NumericImputation)
	}
	if cfg.SuggestProvider != "off" {
		t.Fatalf("SuggestProvider mismatch: got %q", cfg.SuggestProvider)
	}
	if cfg.MaxUploadBytes() != 4<<20 {
		t.Fatalf("MaxUploadBytes mismatch: got %d", cfg.MaxUploadBytes())
	}
	if cfg.BarTopCategories != 5 {
		t.Fatalf("BarTopCategories mismatch: got %d", cfg.BarTopCategories)
	}
	expected := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSAllowedOrigins) != len(expected) {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
	for i, origin := range expected {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
}

func TestLoadConfigRejectsUnknownImputation(t *testing.T) {
	t.Setenv("NUMERIC_IMPUTATION", "mode")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig accepted invalid NUMERIC_IMPUTATION")
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("NUMERIC_IMPUTATION", "")
	t.Setenv("SUGGEST_PROVIDER", "mistral")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig accepted invalid SUGGEST_PROVIDER")
	}
}

func TestLoadConfigRejectsZeroUploadLimit(t *testing.T) {
	t.Setenv("NUMERIC_IMPUTATION", "")
	t.Setenv("SUGGEST_PROVIDER", "")
	t.Setenv("MAX_UPLOAD_MB", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig accepted MAX_UPLOAD_MB=0")
	}
}
