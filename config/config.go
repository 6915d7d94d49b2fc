// Package config loads mediagraph client configuration using Viper.
//
// Configuration sources, in precedence order: explicit file > environment
// variables (MEDIAGRAPH_*) > mediagraph.toml discovered by walking up from
// the working directory > built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/teranos/mediagraph/errors"
)

// Config holds the client knobs the object graph core reads.
type Config struct {
	// AutoReload enables implicit reloads when a missing attribute is
	// accessed on a partial object.
	AutoReload bool `mapstructure:"autoreload"`
	// ContainerSize is the default page size for paginated fetches.
	ContainerSize int `mapstructure:"container_size"`
	// Timeout bounds each transport request.
	Timeout time.Duration `mapstructure:"timeout"`
	// Token is the server auth token. Usually supplied via
	// MEDIAGRAPH_TOKEN rather than a file.
	Token string `mapstructure:"token"`
	// BaseURL is the server base URL, e.g. http://localhost:32400.
	BaseURL string `mapstructure:"base_url"`
}

var (
	globalConfig  *Config
	viperInstance *viper.Viper
)

// Default returns the built-in defaults without consulting any
// configuration source.
func Default() *Config {
	return &Config{
		AutoReload:    true,
		ContainerSize: 100,
		Timeout:       30 * time.Second,
		BaseURL:       "http://localhost:32400",
	}
}

// Load reads the mediagraph configuration using Viper.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// GetViper returns the Viper instance for advanced configuration access.
func GetViper() *viper.Viper {
	return initViper()
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("autoreload", true)
	v.SetDefault("container_size", 100)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("base_url", "http://localhost:32400")
}

// initViper initializes Viper with configuration sources and defaults.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("MEDIAGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		// A malformed discovered file falls back to defaults; an
		// explicit file via LoadFromFile does not.
		_ = v.ReadInConfig()
	}

	viperInstance = v
	return v
}

// findProjectConfig searches for mediagraph.toml by walking up the
// directory tree. Returns empty string if none found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "mediagraph.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
