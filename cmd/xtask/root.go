// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for xtask.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"xtask-cli/internal/commands"
	"xtask-cli/internal/config"
	"xtask-cli/internal/console"
	"xtask-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration, available to every RunE handler
	// after cobra.OnInitialize has run.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "xtask",
		Short: "Workspace automation for multi-crate Rust repositories",
		Long: TitleStyle.Render("xtask") + SubtitleStyle.Render(" - Workspace automation for multi-crate Rust repositories") + `

xtask wraps cargo and rustup behind repeatable commands so that CI
pipelines and developer machines run the exact same invocations.

` + SubtitleStyle.Render("Examples:") + `
  xtask test                        Run unit and integration tests
  xtask test unit --target crates   Unit tests, one cargo run per crate
  xtask vulnerabilities address     Test suite under AddressSanitizer
  xtask vulnerabilities             Nightly checks plus every host sanitizer`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/xtask/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(newTestCommand())
	rootCmd.AddCommand(newVulnerabilitiesCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Config problems must never block a test run; warn and continue
		// with the defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	console.SetVerbose(verbose)
}

// environment returns the deployment environment the CLI runs in.
func environment() commands.Environment {
	return commands.ParseEnvironment(cfg.Environment)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
