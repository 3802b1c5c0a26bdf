package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `postgres:
  dsn: postgres://localhost:5432/hcr2
http:
  port: 8080
donations:
  quota_per_match: 500
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("error writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.DSN != "postgres://localhost:5432/hcr2" {
		t.Errorf("dsn incorrect, got: %s", cfg.Postgres.DSN)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port incorrect, wanted: 8080, got: %d", cfg.HTTP.Port)
	}
	if cfg.Donations.QuotaPerMatch != 500 {
		t.Errorf("quota incorrect, wanted: 500, got: %d", cfg.Donations.QuotaPerMatch)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `postgres:
  dsn: postgres://file/db
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("error writing config file: %v", err)
	}
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "9999")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.DSN != "postgres://env/db" {
		t.Errorf("env override lost, got: %s", cfg.Postgres.DSN)
	}
	if cfg.HTTP.Port != 9999 {
		t.Errorf("port incorrect, wanted: 9999, got: %d", cfg.HTTP.Port)
	}
	if cfg.Donations.QuotaPerMatch != DefaultDonationQuota {
		t.Errorf("quota default incorrect, got: %d", cfg.Donations.QuotaPerMatch)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-only/db")
	t.Setenv("PORT", "")
	t.Setenv("DONATION_QUOTA", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.DSN != "postgres://env-only/db" {
		t.Errorf("dsn incorrect, got: %s", cfg.Postgres.DSN)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("default port incorrect, got: %d", cfg.HTTP.Port)
	}
}

func TestLoadConfigMissingEverything(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error without a DSN")
	}
}
