// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"xtask-cli/internal/commands"

	"github.com/spf13/cobra"
)

// vulnSubCommandDescriptions maps each check to its help line, keyed by the
// CLI name so the sub-command list below stays in one place.
var vulnSubCommandDescriptions = map[string]string{
	"nightly-checks":    "Run cargo-careful over the workspace",
	"address":           "Run tests under AddressSanitizer",
	"cfi":               "Run tests with ControlFlowIntegrity checks",
	"hwaddress":         "Run tests under HWAddressSanitizer",
	"kcfi":              "Run tests with KernelControlFlowIntegrity checks",
	"leak":              "Run tests under LeakSanitizer",
	"memory":            "Run tests under MemorySanitizer",
	"memtag":            "Run tests under MemTagSanitizer",
	"safe-stack":        "Run tests with SafeStack instrumentation",
	"shadow-call-stack": "Run tests with ShadowCallStack instrumentation",
	"thread":            "Run tests under ThreadSanitizer",
	"all":               "Run the nightly checks plus every host sanitizer",
}

// vulnSubCommandOrder fixes the help listing order; map iteration would
// shuffle it between runs.
var vulnSubCommandOrder = []string{
	"nightly-checks",
	"address",
	"cfi",
	"hwaddress",
	"kcfi",
	"leak",
	"memory",
	"memtag",
	"safe-stack",
	"shadow-call-stack",
	"thread",
	"all",
}

// newVulnerabilitiesCommand creates the `xtask vulnerabilities` command
// family. Every check requires the nightly toolchain; the bare command runs
// all of them.
func newVulnerabilitiesCommand() *cobra.Command {
	var force bool

	vulnCmd := &cobra.Command{
		Use:   "vulnerabilities [check]",
		Short: "Run memory-safety and undefined-behavior checks",
		Long: `Run memory-safety and undefined-behavior checks over the workspace.

All checks require the nightly toolchain; on any other channel the command
prints installation guidance and performs no action. Sanitizers whose
platform is not installed are skipped with an informational message.

` + SubtitleStyle.Render("Examples:") + `
  xtask vulnerabilities
  xtask vulnerabilities nightly-checks
  xtask vulnerabilities address
  xtask vulnerabilities thread --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVulnSubCommand(cmd, commands.VulnAll, force)
		},
	}

	vulnCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "run even in the production environment")

	for _, name := range vulnSubCommandOrder {
		sub, err := commands.ParseVulnSubCommand(name)
		if err != nil {
			panic(fmt.Sprintf("unregistered vulnerabilities sub-command %q", name))
		}
		vulnCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: vulnSubCommandDescriptions[name],
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runVulnSubCommand(cmd, sub, force)
			},
		})
	}

	return vulnCmd
}

func runVulnSubCommand(cmd *cobra.Command, sub commands.VulnSubCommand, force bool) error {
	args := commands.VulnerabilitiesCmdArgs{
		Command: sub,
		Force:   force,
	}

	err := commands.HandleVulnerabilitiesCommand(cmd.Context(), args, environment(), commands.DefaultDeps(cfg.Cargo.Bin))
	if errors.Is(err, commands.ErrBlockedByEnvironment) {
		return &ExitError{Code: 1, Err: err}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}
