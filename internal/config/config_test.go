package config

import (
	"testing"
	"time"
)

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing required env")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_NAME", "careergps")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("SYNC_INTERVAL_HOURS", "")
	t.Setenv("SYNC_RETENTION_DAYS", "")
	t.Setenv("SYNC_SEARCH_TERMS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Sync.IntervalHours != 12 {
		t.Fatalf("expected default interval 12, got %d", cfg.Sync.IntervalHours)
	}
	if cfg.Sync.RetentionDays != 30 {
		t.Fatalf("expected default retention 30, got %d", cfg.Sync.RetentionDays)
	}
	if len(cfg.Sync.SearchTerms) == 0 {
		t.Fatalf("expected default search terms")
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("expected default access expiry, got %s", cfg.JWT.AccessExpiresIn)
	}
}

func TestParseSearchTerms(t *testing.T) {
	terms := parseSearchTerms("go developer@jakarta; data engineer ;@x")
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if terms[0].Keywords != "go developer" || terms[0].Location != "jakarta" {
		t.Fatalf("unexpected first term: %+v", terms[0])
	}
	if terms[1].Keywords != "data engineer" || terms[1].Location != "" {
		t.Fatalf("unexpected second term: %+v", terms[1])
	}
}
