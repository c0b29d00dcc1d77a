// SPDX-License-Identifier: MPL-2.0

// Package config loads xtask configuration from the platform config directory
// and XTASK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"xtask-cli/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "xtask"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
)

type (
	// Config is the resolved xtask configuration.
	Config struct {
		// Environment names the deployment environment this invocation runs
		// in ("development", "staging", "production"). Production blocks test
		// execution unless --force is given.
		Environment string `mapstructure:"environment"`

		Cargo CargoConfig `mapstructure:"cargo"`
		UI    UIConfig    `mapstructure:"ui"`
	}

	// CargoConfig controls how the cargo toolchain is invoked.
	CargoConfig struct {
		// Bin is the cargo executable name or path.
		Bin string `mapstructure:"bin"`
	}

	// UIConfig controls console output.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Cargo: CargoConfig{
			Bin: "cargo",
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}

var (
	// configDirOverride allows tests to redirect the config directory.
	configDirOverride string
	// configFileOverride is set by the --config flag.
	configFileOverride string
)

// SetConfigDirOverride redirects config directory lookup, primarily for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride forces loading from a specific config file.
func SetConfigFilePathOverride(path string) {
	configFileOverride = path
}

// ConfigDir returns the xtask configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads configuration from the config file (if present) and XTASK_*
// environment variables, falling back to defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("environment", defaults.Environment)
	v.SetDefault("cargo.bin", defaults.Cargo.Bin)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFileOverride != "" {
		if _, err := os.Stat(configFileOverride); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFileOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(err).
				Build()
		}
		v.SetConfigFile(configFileOverride)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, issue.WrapWithOperation(err, "resolve config directory")
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything else is surfaced.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, issue.NewErrorContext().
				WithOperation("parse configuration").
				WithResource(v.ConfigFileUsed()).
				WithSuggestion("Check the YAML syntax of the config file").
				Wrap(err).
				Build()
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, issue.WrapWithOperation(err, "decode configuration")
	}

	return cfg, nil
}
