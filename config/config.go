// Package config loads typebridge configuration with Viper.
//
// Configuration lives in typebridge.toml, searched in the working directory
// and then the user config dir, with TYPEBRIDGE_* environment overrides.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/typebridge/typebridge/errors"
)

// Config is the full typebridge configuration.
type Config struct {
	Translate TranslateConfig `mapstructure:"translate"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Output    OutputConfig    `mapstructure:"output"`
}

// TranslateConfig controls the per-module translation pass.
type TranslateConfig struct {
	// Roots is the allow-list of recognized root namespaces.
	Roots []string `mapstructure:"roots"`
	// Deny lists fully-qualified names dropped as documented exceptions.
	Deny []string `mapstructure:"deny"`
}

// PipelineConfig controls discovery and batch execution.
type PipelineConfig struct {
	// Exclude drops input files whose path contains any of these substrings.
	Exclude []string `mapstructure:"exclude"`
	// Workers bounds concurrent module translations.
	Workers int `mapstructure:"workers"`
	// DebounceMs is the watch-mode rebuild debounce window.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// OutputConfig controls where the combined declaration file goes.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

var globalConfig *Config

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("translate.roots", []string{"goog", "proto2", "osapi", "svgpan"})
	v.SetDefault("translate.deny", []string{
		"goog.Promise.prototype.then",
		"goog.module",
		"goog.isArrayLike",
	})

	v.SetDefault("pipeline.exclude", []string{"_test.", "/testdata/", "/demos/", "/mocks/"})
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.debounce_ms", 250)

	v.SetDefault("output.path", "index.d.ts")
}

// Load reads the configuration, caching the result for subsequent calls.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := viper.New()
	v.SetConfigName("typebridge")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/typebridge")
	v.SetEnvPrefix("TYPEBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path, bypassing the
// search paths and the cache.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", path)
	}
	return &config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
}
