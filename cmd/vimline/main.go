package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/willibrandon/vimline/internal/config"
	"github.com/willibrandon/vimline/internal/logger"
	"github.com/willibrandon/vimline/theme"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	themeName  string
	logFile    string
	debug      bool

	// cfg is the loaded configuration, populated before any
	// subcommand runs.
	cfg *config.Config
)

// Exit codes
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitConfig    = 2
	exitNoTTY     = 3
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vimline",
		Short: "Validated terminal input with vi-style editing",
		Long: `vimline prompts for a line (or several) of input through a themed,
bordered field with vi-style modal editing and built-in validation.

The submitted value is printed to stdout, so it composes with shell
capture:

  email=$(vimline input --title Email --email --required)
  secret=$(vimline password --title "API key")

A cancelled prompt (Ctrl+C or Ctrl+D) exits with status 1 and prints
nothing.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/vimline/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "theme name or path to a theme YAML file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (default ~/.config/vimline/vimline.log)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newInputCmd(),
		newPasswordCmd(),
		newThemesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitConfig)
	}
}

// setup loads configuration and initializes logging. Flags override
// config file values.
func setup() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if logFile != "" {
		cfg.Log.File = logFile
	}
	if debug {
		cfg.Debug = true
	}

	level := logger.LevelInfo
	if cfg.Debug {
		level = logger.LevelDebug
	} else if cfg.Log.Level != "" {
		level, err = logger.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
	}
	logger.InitLogger(level, cfg.Log.File)

	logger.Debug("vimline starting", "version", version, "config", configPath)
	return nil
}

// resolveTheme picks the theme from the --theme flag or config. A flag
// value containing a path separator or .yaml suffix is treated as a
// theme file.
func resolveTheme() (theme.Theme, error) {
	if themeName != "" {
		if looksLikeFile(themeName) {
			return theme.LoadFile(themeName)
		}
		return theme.ByName(themeName)
	}
	return cfg.Theme()
}

func looksLikeFile(s string) bool {
	for _, r := range s {
		if r == '/' || r == '\\' || r == '.' {
			return true
		}
	}
	return false
}
