// SPDX-License-Identifier: MPL-2.0

// Package console provides leveled logging and collapsible output groups.
//
// Groups mirror the GitHub Actions log-grouping protocol when running under
// CI, and fall back to styled headers in a local terminal. Grouping is purely
// cosmetic: it never affects control flow.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	// out receives group markers; swappable in tests.
	out io.Writer = os.Stdout

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "xtask",
	})

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))
)

// SetVerbose lowers the log level to debug.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// SetOutput redirects group markers, primarily for tests.
// A nil writer restores standard output.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Debug logs a debug message, visible only in verbose mode.
func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Group opens a collapsible output group with the given label.
// Every Group call must be paired with EndGroup.
func Group(format string, args ...any) {
	label := fmt.Sprintf(format, args...)
	if runningInCI() {
		fmt.Fprintf(out, "::group::%s\n", label)
		return
	}
	fmt.Fprintln(out, groupStyle.Render("▶ "+label))
}

// EndGroup closes the most recently opened output group.
func EndGroup() {
	if runningInCI() {
		fmt.Fprintln(out, "::endgroup::")
	}
}

func runningInCI() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}
