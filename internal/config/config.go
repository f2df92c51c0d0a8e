package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CADENCE_"

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	DB        DBConfig        `yaml:"db" toml:"db"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	Auth      AuthConfig      `yaml:"auth" toml:"auth"`
	Transport TransportConfig `yaml:"transport" toml:"transport"`
	Publisher PublisherConfig `yaml:"publisher" toml:"publisher"`
	Calendar  CalendarConfig  `yaml:"calendar" toml:"calendar"`
}

type ServerConfig struct {
	Host              string   `yaml:"host" toml:"host"`
	Port              int      `yaml:"port" toml:"port"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout" toml:"read_header_timeout"`
	CORSOrigins       []string `yaml:"cors_origins" toml:"cors_origins"`
}

type DBConfig struct {
	Path string `yaml:"path" toml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	Path  string `yaml:"path" toml:"path"`
}

type AuthConfig struct {
	Enabled  bool     `yaml:"enabled" toml:"enabled"`
	TokenTTL Duration `yaml:"token_ttl" toml:"token_ttl"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" toml:"mode"` // http or stdio
}

type PublisherConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Schedule string `yaml:"schedule" toml:"schedule"`
}

type CalendarConfig struct {
	DefaultTimezone string `yaml:"default_timezone" toml:"default_timezone"`
}

// Duration is a time.Duration read from strings such as "30s" or "720h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for both file formats.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadHeaderTimeout: Duration{10 * time.Second},
		},
		DB: DBConfig{
			Path: "cadence.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			Enabled:  true,
			TokenTTL: Duration{720 * time.Hour},
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Publisher: PublisherConfig{
			Enabled:  true,
			Schedule: "@every 1m",
		},
		Calendar: CalendarConfig{
			DefaultTimezone: "UTC",
		},
	}
}

// Load reads defaults, then the file named by CADENCE_CONFIG_PATH if set,
// then environment overrides, and validates the result.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(EnvPrefix + "CONFIG_PATH"))
}

// LoadFrom is Load with an explicit config file path. An empty path skips
// the file.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location returns the configured default calendar zone.
func (c Config) Location() (*time.Location, error) {
	if c.Calendar.DefaultTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Calendar.DefaultTimezone)
}

// Addr returns the host:port the HTTP server listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.ReadHeaderTimeout.Duration < 0 {
		errs = append(errs, errors.New("server.read_header_timeout must not be negative"))
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		errs = append(errs, errors.New("db.path is required"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.Auth.TokenTTL.Duration <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		errs = append(errs, fmt.Errorf("transport.mode %q is not http or stdio", c.Transport.Mode))
	}
	if c.Publisher.Enabled {
		if _, err := cron.ParseStandard(c.Publisher.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("publisher.schedule: %w", err))
		}
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("calendar.default_timezone: %w", err))
	}
	return errors.Join(errs...)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return v, ok && v != ""
	}

	if v, ok := get("SERVER_HOST"); ok {
		cfg.Server.Host = v
	}
	if v, ok := get("SERVER_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSERVER_PORT: %w", EnvPrefix, err)
		}
		cfg.Server.Port = port
	}
	if v, ok := get("SERVER_READ_HEADER_TIMEOUT"); ok {
		if err := cfg.Server.ReadHeaderTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid %sSERVER_READ_HEADER_TIMEOUT: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("CORS_ORIGINS"); ok {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v, ok := get("DB_PATH"); ok {
		cfg.DB.Path = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := get("LOG_PATH"); ok {
		cfg.Log.Path = v
	}
	if v, ok := get("AUTH_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sAUTH_ENABLED: %w", EnvPrefix, err)
		}
		cfg.Auth.Enabled = enabled
	}
	if v, ok := get("AUTH_TOKEN_TTL"); ok {
		if err := cfg.Auth.TokenTTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid %sAUTH_TOKEN_TTL: %w", EnvPrefix, err)
		}
	}
	if v, ok := get("TRANSPORT_MODE"); ok {
		cfg.Transport.Mode = strings.ToLower(v)
	}
	if v, ok := get("PUBLISHER_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sPUBLISHER_ENABLED: %w", EnvPrefix, err)
		}
		cfg.Publisher.Enabled = enabled
	}
	if v, ok := get("PUBLISHER_SCHEDULE"); ok {
		cfg.Publisher.Schedule = v
	}
	if v, ok := get("CALENDAR_DEFAULT_TIMEZONE"); ok {
		cfg.Calendar.DefaultTimezone = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
