// Package config reads the optional sharechart configuration file.
//
// The file is TOML and every key is optional; unset values fall through to
// the built-in defaults applied by the pipeline. Command-line flags take
// precedence over the file.
//
//	[chart]
//	radius = 200
//	palette = ["#1d70b8", "#d4351c", "#00703c"]
//	locale = "fr-CA"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "6h"
//
//	[server]
//	addr = ":8080"
//	data_dir = "/srv/charts"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config mirrors the file layout.
type Config struct {
	Chart  Chart  `toml:"chart"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Chart holds rendering defaults.
type Chart struct {
	Radius      float64  `toml:"radius"`
	LabelOffset float64  `toml:"label_offset"`
	Max         float64  `toml:"max"`
	Scale       float64  `toml:"scale"`
	Palette     []string `toml:"palette"`
	Locale      string   `toml:"locale"`
	Currency    string   `toml:"currency"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
}

// Server configures the serve command.
type Server struct {
	Addr         string   `toml:"addr"`
	DataDir      string   `toml:"data_dir"`
	AllowRemote  bool     `toml:"allow_remote"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string such as "90s" or "6h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultPath is $XDG_CONFIG_HOME/sharechart/config.toml, or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sharechart", "config.toml")
}

// Load reads the file at path. A missing file yields the zero Config and no
// error. Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text.
func Parse(text string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("parse config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	backends := []string{"", BackendFile, BackendRedis, BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New("cache.redis_url is required for the redis backend")
	}
	return nil
}

// Encode writes cfg as TOML, used by "sharechart config" to show the
// effective file.
func Encode(cfg Config) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}
