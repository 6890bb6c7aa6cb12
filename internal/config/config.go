package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"asset-dashboard/internal/logging"
	"asset-dashboard/internal/summary"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Peaks   PeaksConfig   `yaml:"peaks"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port     string `yaml:"port"`
	Env      string `yaml:"env"` // "production" switches gin to release mode
	PageSize int    `yaml:"page_size"`
	Title    string `yaml:"title"`
	Footer   string `yaml:"footer"`
	// AllowedOrigins for CORS on the JSON API; empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatasetConfig struct {
	// Path is resolved relative to the config file when not absolute.
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"`
	Watch bool   `yaml:"watch"`
}

type PeaksConfig struct {
	OnPeakStart string `yaml:"on_peak_start"`
	OnPeakEnd   string `yaml:"on_peak_end"`
}

type CacheConfig struct {
	Disabled      bool          `yaml:"disabled"`
	TTL           time.Duration `yaml:"ttl"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     "8050",
			Env:      "development",
			PageSize: 27,
			Title:    "PCI August Asset Data Dashboard",
			Footer:   "2023 Kareem Dibs",
		},
		Dataset: DatasetConfig{
			Path: "Aug_Asset_Data_V1.xlsx",
		},
		Peaks: PeaksConfig{
			OnPeakStart: "07:00",
			OnPeakEnd:   "23:00",
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.TextFormat,
		},
	}
}

// Load reads path (optional), applies environment overrides and validates.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked overlays the YAML file at path onto the defaults, without
// environment overrides or validation. An empty path returns the defaults.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Dataset.Path != "" && !filepath.IsAbs(c.Dataset.Path) {
		// Prefer interpreting relative paths as relative to the config file directory,
		// but fall back to the provided path (relative to cwd) if that doesn't exist.
		cand := filepath.Join(filepath.Dir(path), c.Dataset.Path)
		if _, err := os.Stat(cand); err == nil {
			c.Dataset.Path = cand
		}
	}
	return c, nil
}

// ApplyEnv overlays non-empty environment variables onto c.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := getenv("DATASET_PATH"); v != "" {
		c.Dataset.Path = v
	}
	if v := getenv("DATASET_SHEET"); v != "" {
		c.Dataset.Sheet = v
	}
	if v := getenv("DATASET_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Dataset.Watch = b
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var merr error
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p <= 0 || p > 65535 {
		merr = multierror.Append(merr, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
	}
	if c.Server.PageSize <= 0 {
		merr = multierror.Append(merr, errors.New("server.page_size must be > 0"))
	}
	if strings.TrimSpace(c.Dataset.Path) == "" {
		merr = multierror.Append(merr, errors.New("dataset.path is required"))
	}
	if _, err := c.PeakWindow(); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("peaks: %w", err))
	}
	if c.Cache.TTL < 0 {
		merr = multierror.Append(merr, errors.New("cache.ttl must be >= 0"))
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("log.format: %w", err))
	}
	if merr != nil {
		return fmt.Errorf("invalid config: %w", merr)
	}
	return nil
}

func (c *Config) PeakWindow() (summary.PeakWindow, error) {
	return summary.NewPeakWindow(c.Peaks.OnPeakStart, c.Peaks.OnPeakEnd)
}

func (c *Config) Production() bool {
	return c.Server.Env == "production"
}
