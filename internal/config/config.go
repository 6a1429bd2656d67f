package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Sync     SyncConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// SyncConfig drives the ingestion pipeline and its scheduler.
type SyncConfig struct {
	IntervalHours int
	RetentionDays int
	RunOnStartup  bool

	SearchTerms []SearchTerm

	AdzunaAppID   string
	AdzunaAPIKey  string
	AdzunaCountry string

	IndeedBaseURL string
}

type SearchTerm struct {
	Keywords string
	Location string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Sync = SyncConfig{
		IntervalHours: optInt("SYNC_INTERVAL_HOURS", 12),
		RetentionDays: optInt("SYNC_RETENTION_DAYS", 30),
		RunOnStartup:  optBool("SYNC_RUN_ON_STARTUP", true),
		SearchTerms:   parseSearchTerms(opt("SYNC_SEARCH_TERMS")),
		AdzunaAppID:   opt("ADZUNA_APP_ID"),
		AdzunaAPIKey:  opt("ADZUNA_API_KEY"),
		AdzunaCountry: opt("ADZUNA_COUNTRY"),
		IndeedBaseURL: opt("INDEED_BASE_URL"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func optBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func optDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// parseSearchTerms parses "keywords@location;keywords@location".
// A term without "@" is keywords-only.
func parseSearchTerms(raw string) []SearchTerm {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultSearchTerms()
	}

	out := make([]SearchTerm, 0)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kw, loc, found := strings.Cut(part, "@")
		term := SearchTerm{Keywords: strings.TrimSpace(kw)}
		if found {
			term.Location = strings.TrimSpace(loc)
		}
		if term.Keywords == "" {
			continue
		}
		out = append(out, term)
	}
	if len(out) == 0 {
		return defaultSearchTerms()
	}
	return out
}

func defaultSearchTerms() []SearchTerm {
	return []SearchTerm{
		{Keywords: "python developer", Location: "remote"},
		{Keywords: "react developer", Location: "remote"},
		{Keywords: "full stack developer", Location: "remote"},
	}
}
