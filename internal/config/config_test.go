package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL.Duration)
	require.Equal(t, "@every 1m", cfg.Publisher.Schedule)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CADENCE_CONFIG_PATH", "")
	t.Setenv("CADENCE_SERVER_PORT", "9090")
	t.Setenv("CADENCE_DB_PATH", "/tmp/cadence-test.db")
	t.Setenv("CADENCE_AUTH_ENABLED", "false")
	t.Setenv("CADENCE_AUTH_TOKEN_TTL", "48h")
	t.Setenv("CADENCE_CORS_ORIGINS", "http://localhost:5173, https://app.example.com")
	t.Setenv("CADENCE_TRANSPORT_MODE", "STDIO")
	t.Setenv("CADENCE_PUBLISHER_SCHEDULE", "*/5 * * * *")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/cadence-test.db", cfg.DB.Path)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, 48*time.Hour, cfg.Auth.TokenTTL.Duration)
	require.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.Server.CORSOrigins)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "*/5 * * * *", cfg.Publisher.Schedule)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("CADENCE_CONFIG_PATH", "")
	t.Setenv("CADENCE_SERVER_PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "CADENCE_SERVER_PORT")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadence.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
  read_header_timeout: 5s
db:
  path: data/cadence.db
auth:
  token_ttl: 24h
publisher:
  enabled: false
`), 0o600))
	t.Setenv("CADENCE_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout.Duration)
	require.Equal(t, "data/cadence.db", cfg.DB.Path)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL.Duration)
	require.False(t, cfg.Publisher.Enabled)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadence.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
host = "127.0.0.1"
cors_origins = ["http://localhost:3000"]

[log]
level = "debug"

[auth]
enabled = false
token_ttl = "1h"

[calendar]
default_timezone = "UTC"
`), 0o600))
	t.Setenv("CADENCE_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8080", cfg.Addr())
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, time.Hour, cfg.Auth.TokenTTL.Duration)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CADENCE_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config file")
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 70000
	cfg.DB.Path = " "
	cfg.Log.Level = "loud"
	cfg.Auth.TokenTTL = Duration{}
	cfg.Transport.Mode = "carrier-pigeon"
	cfg.Publisher.Schedule = "whenever"
	cfg.Calendar.DefaultTimezone = "Nowhere/Land"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"server.port", "db.path", "log.level", "auth.token_ttl",
		"transport.mode", "publisher.schedule", "calendar.default_timezone",
	} {
		require.Contains(t, err.Error(), want)
	}
}

func TestValidate_SkipsScheduleWhenPublisherDisabled(t *testing.T) {
	cfg := Default()
	cfg.Publisher.Enabled = false
	cfg.Publisher.Schedule = "whenever"
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_ExplicitPathIgnoresEnvPath(t *testing.T) {
	t.Setenv("CADENCE_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	path := filepath.Join(t.TempDir(), "cadence.yml")
	require.NoError(t, os.WriteFile(path, []byte("transport:\n  mode: stdio\n"), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, "stdio", cfg.Transport.Mode)
}
