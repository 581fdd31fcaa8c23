package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
postgres:
  dsn: postgres://file
nats:
  url: nats://file:4222
http:
  address: ":9000"
  allowed_origins: ["https://a.example"]
  rate_limit: 2.5
  rate_burst: 4
competition:
  document_page: trip-2026
`)
	t.Setenv("NATS_URL", "nats://env:4222")
	t.Setenv("ALLOWED_ORIGINS", "https://b.example, https://c.example,")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file", cfg.Postgres.DSN)
	assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.HTTP.AllowedOrigins)
	assert.InDelta(t, 2.5, cfg.HTTP.RateLimit, 1e-9)
	assert.Equal(t, 4, cfg.HTTP.RateBurst)
	assert.Equal(t, "trip-2026", cfg.Competition.DocumentPage)
	assert.Equal(t, DefaultRosterPage, cfg.Competition.RosterPage)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	t.Run("requires database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := LoadConfig(missing)
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("ENV", "production")

		cfg, err := LoadConfig(missing)
		require.NoError(t, err)
		assert.Equal(t, "postgres://env", cfg.Postgres.DSN)
		assert.Empty(t, cfg.NATS.URL)
		assert.Equal(t, DefaultHTTPAddress, cfg.HTTP.Address)
		assert.InDelta(t, DefaultRateLimit, cfg.HTTP.RateLimit, 1e-9)
		assert.Equal(t, DefaultRateBurst, cfg.HTTP.RateBurst)
		assert.Equal(t, DefaultDocumentPage, cfg.Competition.DocumentPage)
		assert.Equal(t, "production", cfg.Observability.Environment)
	})

	t.Run("bad numeric override", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("RATE_BURST", "lots")
		_, err := LoadConfig(missing)
		assert.ErrorContains(t, err, "RATE_BURST")
	})
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "postgres: [unclosed")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to unmarshal config")
}
