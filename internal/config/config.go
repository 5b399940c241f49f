// Package config loads CLI configuration from YAML and environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/willibrandon/vimline/theme"
)

// Config represents the root configuration structure.
type Config struct {
	UI    UIConfig  `mapstructure:"ui"`
	Log   LogConfig `mapstructure:"log"`
	Debug bool      `mapstructure:"debug"`
}

// UIConfig holds field appearance preferences.
type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	ThemeFile       string `mapstructure:"theme_file"`
	Width           int    `mapstructure:"width"`
	LineNumbers     bool   `mapstructure:"line_numbers"`
	RelativeNumbers bool   `mapstructure:"relative_numbers"`
	LiveValidation  bool   `mapstructure:"live_validation"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from the default search path
// (~/.config/vimline, then the working directory) and environment
// variables with the VIMLINE_ prefix.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config/vimline")
	viper.AddConfigPath(".")
	return load()
}

// LoadFromPath loads configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	viper.SetConfigFile(path)
	return load()
}

func load() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("VIMLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults and environment only.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Theme resolves the configured theme, preferring an explicit theme
// file over a built-in name.
func (c *Config) Theme() (theme.Theme, error) {
	if c.UI.ThemeFile != "" {
		return theme.LoadFile(c.UI.ThemeFile)
	}
	return theme.ByName(c.UI.Theme)
}

// Validate validates the configuration values.
func Validate(cfg *Config) error {
	if cfg.UI.ThemeFile == "" {
		if _, err := theme.ByName(cfg.UI.Theme); err != nil {
			return fmt.Errorf("ui.theme: %w", err)
		}
	}

	if cfg.UI.Width < 0 {
		return fmt.Errorf("ui.width must be >= 0, got %d", cfg.UI.Width)
	}
	if cfg.UI.Width > 0 && cfg.UI.Width < 12 {
		return fmt.Errorf("ui.width must be at least 12 columns, got %d", cfg.UI.Width)
	}

	validLevels := []string{"", "debug", "info", "warn", "warning", "error"}
	validLevel := false
	for _, level := range validLevels {
		if strings.EqualFold(cfg.Log.Level, level) {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %s", cfg.Log.Level)
	}

	return nil
}

// applyDefaults sets default configuration values.
func applyDefaults() {
	viper.SetDefault("ui.theme", "dark")
	viper.SetDefault("ui.width", 0)
	viper.SetDefault("ui.line_numbers", false)
	viper.SetDefault("ui.relative_numbers", false)
	viper.SetDefault("ui.live_validation", false)

	viper.SetDefault("log.level", "info")

	viper.SetDefault("debug", false)
}
