// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"xtask-cli/internal/commands"
	"xtask-cli/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Run("plain error uses Error()", func(t *testing.T) {
		got := formatErrorForDisplay(errors.New("boom"), false)
		if got != "boom" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
		}
	})

	t.Run("actionable error uses Format", func(t *testing.T) {
		ae := issue.NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("check the file permissions").
			BuildError()

		got := formatErrorForDisplay(ae, false)
		if !strings.Contains(got, "failed to load configuration") {
			t.Errorf("missing operation in %q", got)
		}
		if !strings.Contains(got, "check the file permissions") {
			t.Errorf("missing suggestion in %q", got)
		}
	})
}

func TestCommandTree(t *testing.T) {
	subcommands := map[string][]string{
		"test":            {"unit", "integration", "all"},
		"vulnerabilities": {"nightly-checks", "address", "cfi", "hwaddress", "kcfi", "leak", "memory", "memtag", "safe-stack", "shadow-call-stack", "thread", "all"},
	}

	for parent, children := range subcommands {
		found, _, err := rootCmd.Find([]string{parent})
		if err != nil || found.Name() != parent {
			t.Fatalf("root command is missing %q: %v", parent, err)
		}
		for _, child := range children {
			sub, _, err := found.Find([]string{child})
			if err != nil || sub.Name() != child {
				t.Errorf("%s is missing sub-command %q", parent, child)
			}
		}
	}
}

func TestVulnSubCommandOrderMatchesRegistry(t *testing.T) {
	if len(vulnSubCommandOrder) != len(vulnSubCommandDescriptions) {
		t.Fatalf("order lists %d names, descriptions list %d", len(vulnSubCommandOrder), len(vulnSubCommandDescriptions))
	}
	for _, name := range vulnSubCommandOrder {
		if _, ok := vulnSubCommandDescriptions[name]; !ok {
			t.Errorf("no description for %q", name)
		}
		if _, err := commands.ParseVulnSubCommand(name); err != nil {
			t.Errorf("%q does not parse: %v", name, err)
		}
	}
}

func TestEnvironmentFromConfig(t *testing.T) {
	origEnv := cfg.Environment
	t.Cleanup(func() { cfg.Environment = origEnv })

	cfg.Environment = "production"
	if environment() != commands.EnvProduction {
		t.Error("production config must map to the production environment")
	}

	cfg.Environment = "anything-else"
	if environment() != commands.EnvDevelopment {
		t.Error("unknown environment names must default to development")
	}
}
