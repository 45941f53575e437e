// Package config loads the smartdocsd configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv and the CLI.
const (
	EnvAddr     = "SMARTDOCS_ADDR"
	EnvConfig   = "SMARTDOCS_CONFIG"
	EnvLogLevel = "SMARTDOCS_LOG_LEVEL"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Addr         string          `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel     string          `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	LogFormat    string          `json:"log_format" yaml:"log_format" toml:"log_format" validate:"omitempty,oneof=json console"`
	ImportDir    string          `json:"import_dir" yaml:"import_dir" toml:"import_dir"`
	RecentEvents int             `json:"recent_events" yaml:"recent_events" toml:"recent_events" validate:"gte=0"`
	Store        StoreConfig     `json:"store" yaml:"store" toml:"store"`
	Cache        CacheConfig     `json:"cache" yaml:"cache" toml:"cache"`
	HTTP         HTTPConfig      `json:"http" yaml:"http" toml:"http"`
	Observers    ObserversConfig `json:"observers" yaml:"observers" toml:"observers"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Driver is memory, sqlite, postgres or mysql.
	Driver string `json:"driver" yaml:"driver" toml:"driver" validate:"omitempty,oneof=memory sqlite postgres mysql"`
	DSN    string `json:"dsn" yaml:"dsn" toml:"dsn"`
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	// Driver is memory, redis or none.
	Driver    string `json:"driver" yaml:"driver" toml:"driver" validate:"omitempty,oneof=memory redis none"`
	RedisAddr string `json:"redis_addr" yaml:"redis_addr" toml:"redis_addr"`
	Password  string `json:"password" yaml:"password" toml:"password"`
	DB        int    `json:"db" yaml:"db" toml:"db" validate:"gte=0"`
	// InMemory runs an embedded redis server instead of dialing RedisAddr.
	InMemory   bool `json:"in_memory" yaml:"in_memory" toml:"in_memory"`
	TTLSeconds int  `json:"ttl_seconds" yaml:"ttl_seconds" toml:"ttl_seconds" validate:"gte=0"`
}

type HTTPConfig struct {
	MaxBodyBytes       int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" validate:"gte=0"`
	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	CORSAllowedMethods []string `json:"cors_allowed_methods" yaml:"cors_allowed_methods" toml:"cors_allowed_methods"`
	CORSAllowedHeaders []string `json:"cors_allowed_headers" yaml:"cors_allowed_headers" toml:"cors_allowed_headers"`
}

// ObserversConfig enables the built-in observers.
type ObserversConfig struct {
	Logging           bool   `json:"logging" yaml:"logging" toml:"logging"`
	NodeTitle         bool   `json:"node_title" yaml:"node_title" toml:"node_title"`
	DisplayNamePrefix string `json:"display_name_prefix" yaml:"display_name_prefix" toml:"display_name_prefix"`
	TemplateFooter    string `json:"template_footer" yaml:"template_footer" toml:"template_footer"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Addr:         ":8080",
		LogLevel:     "info",
		LogFormat:    "json",
		RecentEvents: 256,
		Store:        StoreConfig{Driver: "memory"},
		Cache:        CacheConfig{Driver: "memory", TTLSeconds: 3600},
		HTTP:         HTTPConfig{MaxBodyBytes: 1 << 20},
		Observers:    ObserversConfig{Logging: true, NodeTitle: true},
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns c with every zero field taken from d. Booleans are only
// taken from d when the whole section of c is zero.
func (c Config) Merge(d Config) Config {
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.ImportDir == "" {
		c.ImportDir = d.ImportDir
	}
	if c.RecentEvents == 0 {
		c.RecentEvents = d.RecentEvents
	}
	if c.Store.Driver == "" {
		c.Store.Driver = d.Store.Driver
	}
	if c.Store.DSN == "" {
		c.Store.DSN = d.Store.DSN
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = d.Cache.Driver
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = d.Cache.RedisAddr
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = d.Cache.TTLSeconds
	}
	if c.HTTP.MaxBodyBytes == 0 {
		c.HTTP.MaxBodyBytes = d.HTTP.MaxBodyBytes
	}
	if c.Observers == (ObserversConfig{}) {
		c.Observers = d.Observers
	}
	return c
}

// ApplyEnv overrides fields from SMARTDOCS_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

var validate = validator.New()

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Addr == "" {
		return fmt.Errorf("invalid config: addr is required")
	}
	switch c.Store.Driver {
	case "postgres", "mysql":
		if c.Store.DSN == "" {
			return fmt.Errorf("invalid config: store driver %s requires a dsn", c.Store.Driver)
		}
	}
	if c.Cache.Driver == "redis" && !c.Cache.InMemory && c.Cache.RedisAddr == "" {
		return fmt.Errorf("invalid config: redis cache requires redis_addr or in_memory")
	}
	return nil
}
