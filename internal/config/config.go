package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for an asperge run.
// Values are populated from .asperge.yaml, ASPERGE_* env vars, and CLI flags.
type Config struct {
	Verbose       bool   `mapstructure:"verbose"`
	LayoutDir     string `mapstructure:"layout_dir"`
	SourceDir     string `mapstructure:"source_dir"`
	SourceExt     string `mapstructure:"source_ext"`
	TemplatesFile string `mapstructure:"templates_file"`
	TracePath     string `mapstructure:"trace_path"`
	Indent        string `mapstructure:"indent"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("verbose", false)
	viper.SetDefault("layout_dir", "res/layout")
	viper.SetDefault("source_dir", "java")
	viper.SetDefault("source_ext", "java")
	viper.SetDefault("templates_file", "")
	viper.SetDefault("trace_path", "")
	viper.SetDefault("indent", "\t")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.LayoutDir == "" || cfg.SourceDir == "" {
		return Config{}, fmt.Errorf("config: layout_dir and source_dir must not be empty")
	}
	if cfg.SourceExt == "" {
		return Config{}, fmt.Errorf("config: source_ext must not be empty")
	}
	return cfg, nil
}
