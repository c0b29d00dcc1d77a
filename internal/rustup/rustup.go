// SPDX-License-Identifier: MPL-2.0

// Package rustup wraps the rustup binary for toolchain queries: active
// channel, installed compilation targets, and component installation.
package rustup

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"xtask-cli/internal/console"
	"xtask-cli/internal/issue"
)

// Toolchain runs rustup commands against the active toolchain.
// The zero value uses the rustup binary from PATH.
type Toolchain struct {
	// Bin is the rustup executable name or path; empty means "rustup".
	Bin string
}

func (t *Toolchain) bin() string {
	if t.Bin != "" {
		return t.Bin
	}
	return "rustup"
}

// IsNightly reports whether the active toolchain is on the nightly channel.
// Any failure to query rustup is treated as "not nightly".
func (t *Toolchain) IsNightly(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, t.bin(), "show", "active-toolchain").Output()
	if err != nil {
		console.Debug("rustup show active-toolchain failed: %v", err)
		return false
	}
	return isNightlyOutput(string(out))
}

// InstalledTargets returns the platform triples installed for the active
// toolchain, one per line of `rustup target list --installed`.
func (t *Toolchain) InstalledTargets(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, t.bin(), "target", "list", "--installed").Output()
	if err != nil {
		return nil, issue.WrapWithOperation(err, "list installed rustup targets")
	}
	return splitTargets(string(out)), nil
}

// AddComponent installs a rustup component (e.g. rust-src) for the active
// toolchain. Installing an already-present component is a no-op for rustup.
func (t *Toolchain) AddComponent(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, t.bin(), "component", "add", name)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return issue.NewErrorContext().
			WithOperation("add rustup component").
			WithResource(name).
			WithSuggestion("Check that the component exists for the active toolchain").
			Wrap(err).
			BuildError()
	}
	return nil
}

func isNightlyOutput(out string) bool {
	return strings.Contains(out, "nightly")
}

func splitTargets(out string) []string {
	var targets []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	return targets
}
