// Package config provides the Lodged server configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/duration"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when a nil config is passed to a function.
var ErrNilConfig = errors.New("nil config")

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`

	// QueryTimeout bounds every store call (e.g. "10s").
	QueryTimeout string `env:"QUERY_TIMEOUT" yaml:"query_timeout"`
}

// AuthConfig is the configuration for sessions and signed links.
type AuthConfig struct {
	// SessionTTL is how long a login session stays valid (e.g. "12h", "7d").
	SessionTTL string `env:"SESSION_TTL" yaml:"session_ttl"`

	// LinkSecret signs short-lived roster download links.
	LinkSecret string `env:"LINK_SECRET" yaml:"link_secret"`

	// LinkTTL is how long a roster download link stays valid.
	LinkTTL string `env:"LINK_TTL" yaml:"link_ttl"`
}

// CacheConfig is the directory query cache configuration.
type CacheConfig struct {
	// Size is the maximum number of cached query pages.
	Size int `env:"SIZE" yaml:"size"`

	// TTL is the validity window for cached query pages.
	TTL string `env:"TTL" yaml:"ttl"`

	// ScopeTTL is the validity window for collector scope resolution.
	// Collector assignment changes rarely so this is held longer.
	ScopeTTL string `env:"SCOPE_TTL" yaml:"scope_ttl"`
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	SessionSweep string `env:"SESSION_SWEEP" yaml:"session_sweep"`
}

// Config is the configuration for Lodged.
type Config struct {
	// Name is the name of the organization.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Auth is the session and signed-link configuration.
	Auth AuthConfig `envPrefix:"AUTH_" yaml:"auth"`

	// Cache is the query cache configuration.
	Cache CacheConfig `envPrefix:"CACHE_" yaml:"cache"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// DataPath is the path to the directory where Lodged will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("LODGED_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("LODGED_VERBOSE"))
	return IsDebug() && verbose
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.DataPath, "config.yaml")
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	if err := env.ParseWithOptions(c, env.Options{
		Prefix: "LODGED_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return c.Validate()
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// WriteConfig writes the config to the default file path.
func (c *Config) WriteConfig() error {
	if err := os.MkdirAll(filepath.Dir(c.ConfigPath()), 0o755); err != nil {
		return err
	}

	buf, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(c.ConfigPath(), buf, 0o600)
}

// Validate validates the config.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	if c.DB.Driver == "" {
		return fmt.Errorf("db driver is empty")
	}

	for _, d := range []string{
		c.DB.QueryTimeout,
		c.Auth.SessionTTL,
		c.Auth.LinkTTL,
		c.Cache.TTL,
		c.Cache.ScopeTTL,
	} {
		if d == "" {
			continue
		}
		if _, err := duration.Parse(d); err != nil {
			return fmt.Errorf("invalid duration %q: %w", d, err)
		}
	}

	return nil
}

// QueryTimeout returns the bounded timeout applied to store calls.
func (c *Config) QueryTimeout() time.Duration {
	return parseDuration(c.DB.QueryTimeout, 10*time.Second)
}

// SessionTTL returns the session validity window.
func (c *Config) SessionTTL() time.Duration {
	return parseDuration(c.Auth.SessionTTL, 12*time.Hour)
}

// LinkTTL returns the signed-link validity window.
func (c *Config) LinkTTL() time.Duration {
	return parseDuration(c.Auth.LinkTTL, 15*time.Minute)
}

// CacheTTL returns the validity window for cached query pages.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 30*time.Second)
}

// ScopeTTL returns the validity window for cached scope resolutions.
func (c *Config) ScopeTTL() time.Duration {
	return parseDuration(c.Cache.ScopeTTL, 5*time.Minute)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := duration.Parse(s)
	if err != nil {
		return def
	}
	return d
}
