// Package config loads settings from a YAML file with environment
// variable overrides. When the file is missing the environment alone
// must carry the database DSN.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const DefaultDonationQuota = 600

type Config struct {
	Postgres  PostgresConfig  `yaml:"postgres"`
	HTTP      HTTPConfig      `yaml:"http"`
	Donations DonationsConfig `yaml:"donations"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// HTTPConfig holds the command relay endpoint configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// DonationsConfig holds the fairness report tuning.
type DonationsConfig struct {
	// QuotaPerMatch is the expected donation per played match.
	QuotaPerMatch int `yaml:"quota_per_match"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		// No file; the environment has to provide everything required.
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value: %v", err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv("DONATION_QUOTA"); v != "" {
		quota, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DONATION_QUOTA value: %v", err)
		}
		cfg.Donations.QuotaPerMatch = quota
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value: %v", err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv("DONATION_QUOTA"); v != "" {
		quota, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DONATION_QUOTA value: %v", err)
		}
		cfg.Donations.QuotaPerMatch = quota
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
	if cfg.Donations.QuotaPerMatch == 0 {
		cfg.Donations.QuotaPerMatch = DefaultDonationQuota
	}
}
