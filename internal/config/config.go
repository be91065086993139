package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/smartspend-dev/spendcsv/internal/categorize"
	"github.com/smartspend-dev/spendcsv/internal/logging"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "spendcsv.yaml"

// EnvPrefix prefixes environment overrides, e.g. SPENDCSV_LOG_LEVEL.
const EnvPrefix = "SPENDCSV"

// Config represents spendcsv.yaml.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Categories categorize.Table `yaml:"categories" mapstructure:"categories"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
}

// LogConfig controls stderr logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn or error
}

// ServerConfig controls `spendcsv serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	MaxUploadMB    int64    `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Default returns a Config with the built-in category table.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: logging.DefaultLevel,
		},
		Categories: categorize.DefaultTable(),
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadMB:    32,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load reads a config file, applies SPENDCSV_* environment overrides and
// fills anything unset from Default. An empty path loads defaults plus
// environment only. A file that sets categories replaces the whole table.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.max_upload_mb", def.Server.MaxUploadMB)
	v.SetDefault("server.allowed_origins", def.Server.AllowedOrigins)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Categories.Order) == 0 && len(cfg.Categories.Keywords) == 0 {
		cfg.Categories = def.Categories
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Find returns the path of DefaultFile in dir, or "" when there is none.
func Find(dir string) string {
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Validate checks the category table and server limits.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Categories.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("categories: %w", err))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB))
	}
	return errors.Join(errs...)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
