package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHTTPAddress  = ":8080"
	DefaultDocumentPage = "competition"
	DefaultRosterPage   = "roster"
	DefaultRateLimit    = 10.0
	DefaultRateBurst    = 20
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Competition   CompetitionConfig   `yaml:"competition"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL keeps events in-process.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API listener settings. RateLimit is requests per
// second per client; zero disables limiting.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
}

// CompetitionConfig names the content store pages.
type CompetitionConfig struct {
	DocumentPage string `yaml:"document_page"`
	RosterPage   string `yaml:"roster_page"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress   string `yaml:"metrics_address"`
	MetricsNamespace string `yaml:"metrics_namespace"`
	Environment      string `yaml:"environment"`
	LogLevel         string `yaml:"log_level"`
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides and defaults. A missing file falls back to the
// environment alone.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT value: %v", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_BURST value: %v", err)
		}
		cfg.HTTP.RateBurst = n
	}
	if v := os.Getenv("COMPETITION_DOCUMENT_PAGE"); v != "" {
		cfg.Competition.DocumentPage = v
	}
	if v := os.Getenv("COMPETITION_ROSTER_PAGE"); v != "" {
		cfg.Competition.RosterPage = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("METRICS_NAMESPACE"); v != "" {
		cfg.Observability.MetricsNamespace = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = DefaultHTTPAddress
	}
	if cfg.HTTP.RateLimit == 0 && cfg.HTTP.RateBurst == 0 {
		cfg.HTTP.RateLimit = DefaultRateLimit
		cfg.HTTP.RateBurst = DefaultRateBurst
	}
	if cfg.HTTP.RateBurst <= 0 {
		cfg.HTTP.RateBurst = 1
	}
	if cfg.Competition.DocumentPage == "" {
		cfg.Competition.DocumentPage = DefaultDocumentPage
	}
	if cfg.Competition.RosterPage == "" {
		cfg.Competition.RosterPage = DefaultRosterPage
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
