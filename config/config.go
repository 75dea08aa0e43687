// Package config loads the base62d service configuration from a file,
// from .env files found in the working directory or its parents, and from
// environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the service configuration
type Config struct {
	// Server settings
	Server struct {
		Host         string `yaml:"host" toml:"host" json:"host" env:"BASE62_HOST"`
		Port         int    `yaml:"port" toml:"port" json:"port" env:"BASE62_PORT"`
		MaxBodyBytes int64  `yaml:"max_body_bytes" toml:"max_body_bytes" json:"max_body_bytes" env:"BASE62_MAX_BODY_BYTES"`
	} `yaml:"server" toml:"server" json:"server"`

	// Metrics settings
	Metrics struct {
		Enabled bool   `yaml:"enabled" toml:"enabled" json:"enabled" env:"BASE62_METRICS_ENABLED"`
		Host    string `yaml:"host" toml:"host" json:"host" env:"BASE62_METRICS_HOST"`
		Port    int    `yaml:"port" toml:"port" json:"port" env:"BASE62_METRICS_PORT"`
		Path    string `yaml:"path" toml:"path" json:"path" env:"BASE62_METRICS_PATH"`
	} `yaml:"metrics" toml:"metrics" json:"metrics"`

	// EnvFileName is the name of the env files searched for; empty disables the search
	EnvFileName string `yaml:"-" toml:"-" json:"-"`

	// Source is the file the configuration was read from, if any
	Source string `yaml:"-" toml:"-" json:"-"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	cfg := &Config{EnvFileName: ".env"}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8062
	cfg.Server.MaxBodyBytes = 1 << 20
	cfg.Metrics.Enabled = true
	cfg.Metrics.Host = "0.0.0.0"
	cfg.Metrics.Port = 7070
	cfg.Metrics.Path = "/metrics"
	return cfg
}

// Load builds a configuration from defaults, the optional source file,
// .env files and the environment, later layers taking precedence.
func Load(source string) (*Config, error) {
	cfg := Default()

	if source != "" {
		if err := cfg.loadFromFile(source); err != nil {
			return nil, err
		}
	}

	if err := loadEnvFiles(cfg.EnvFileName); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			return fmt.Errorf("config: invalid metrics port %d", c.Metrics.Port)
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("config: metrics path %q must start with /", c.Metrics.Path)
		}
	}
	return nil
}

// loadFromFile reads the configuration file, choosing the format by extension
func (c *Config) loadFromFile(source string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".json":
		err = json.Unmarshal(data, c)
	default:
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", source, err)
	}

	c.Source = source
	return nil
}

// loadEnvFiles loads every env file named name from the working directory
// up to the filesystem root. Nearer files win because godotenv never
// overrides a variable that is already set.
func loadEnvFiles(name string) error {
	if name == "" {
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	var envFiles []string
	for {
		envPath := filepath.Join(cwd, name)
		if _, err := os.Stat(envPath); err == nil {
			envFiles = append(envFiles, envPath)
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	if len(envFiles) == 0 {
		return nil
	}
	if err := godotenv.Load(envFiles...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	log.Printf("Loaded %d environment file(s): %v", len(envFiles), envFiles)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	applyEnvOverridesRecursive(reflect.ValueOf(cfg).Elem())
}

func applyEnvOverridesRecursive(v reflect.Value) {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		if envTag := field.Tag.Get("env"); envTag != "" {
			if envValue, exists := os.LookupEnv(envTag); exists {
				if err := setFieldFromEnv(fieldValue, envValue); err != nil {
					log.Printf("Ignoring %s=%q: %v", envTag, envValue, err)
				}
			}
		} else if field.Type.Kind() == reflect.Struct {
			applyEnvOverridesRecursive(fieldValue)
		}
	}
}

// setFieldFromEnv sets a field's value from an environment variable
func setFieldFromEnv(field reflect.Value, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(strings.TrimSpace(envValue), 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(v)
	case reflect.Bool:
		switch v := strings.ToLower(strings.TrimSpace(envValue)); v {
		case "yes", "y", "on":
			field.SetBool(true)
		case "no", "n", "off":
			field.SetBool(false)
		default:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			field.SetBool(b)
		}
	}
	return nil
}

// ListenAddress returns the formatted listen address for the API server
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MetricsAddress returns the formatted listen address for the metrics server
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Metrics.Host, c.Metrics.Port)
}
