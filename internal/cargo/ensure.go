// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"xtask-cli/internal/console"
	"xtask-cli/internal/issue"
)

// EnsureCrateInstalled installs a cargo-distributed tool (e.g. cargo-careful)
// if it is not already present in the cargo install list.
func (r *Runner) EnsureCrateInstalled(ctx context.Context, name string) error {
	out, err := exec.CommandContext(ctx, r.bin(), "install", "--list").Output()
	if err != nil {
		return issue.WrapWithOperation(err, "list installed cargo crates")
	}
	if installListContains(string(out), name) {
		console.Debug("crate '%s' is already installed", name)
		return nil
	}

	console.Info("Installing missing crate '%s'", name)
	cmd := exec.CommandContext(ctx, r.bin(), "install", name)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return issue.NewErrorContext().
			WithOperation("install cargo crate").
			WithResource(name).
			WithSuggestion("Try installing it manually with 'cargo install " + name + "'").
			Wrap(err).
			BuildError()
	}
	return nil
}

// installListContains scans `cargo install --list` output for a crate entry.
// Entries look like "cargo-careful v0.4.0:" at the start of a line.
func installListContains(out, crate string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, crate+" v") {
			return true
		}
	}
	return false
}
