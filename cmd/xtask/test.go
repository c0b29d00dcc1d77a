// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"xtask-cli/internal/commands"

	"github.com/spf13/cobra"
)

// testFlags holds the flag values shared by the whole test command family.
type testFlags struct {
	target            string
	exclude           []string
	only              []string
	threads           int
	jobs              int
	test              string
	features          []string
	noDefaultFeatures bool
	noCapture         bool
	force             bool
}

// newTestCommand creates the `xtask test` command family. The bare command
// runs every phase; `unit`, `integration` and `all` select one explicitly.
func newTestCommand() *cobra.Command {
	flags := &testFlags{}

	testCmd := &cobra.Command{
		Use:   "test [unit|integration|all]",
		Short: "Run tests over the cargo workspace",
		Long: `Run tests over the cargo workspace.

Without a sub-command every test phase runs, unit tests first. The target
flag selects the package grouping:

` + SubtitleStyle.Render("Targets:") + `
  workspace     one cargo invocation over the whole workspace (default)
  crates        one cargo invocation per workspace crate
  examples      one cargo invocation per example package
  all-packages  crates, then examples

` + SubtitleStyle.Render("Examples:") + `
  xtask test
  xtask test unit --target crates --exclude burn-io
  xtask test integration --test persistence
  xtask test all --jobs 4 --no-capture`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTestSubCommand(cmd, commands.TestAll, flags)
		},
	}

	testCmd.PersistentFlags().StringVarP(&flags.target, "target", "t", "workspace", "package grouping to test (workspace|crates|examples|all-packages)")
	testCmd.PersistentFlags().StringSliceVar(&flags.exclude, "exclude", nil, "member names to skip")
	testCmd.PersistentFlags().StringSliceVar(&flags.only, "only", nil, "restrict execution to these members")
	testCmd.PersistentFlags().IntVar(&flags.threads, "threads", 0, "max threads for the test harness")
	testCmd.PersistentFlags().IntVar(&flags.jobs, "jobs", 0, "max parallel cargo jobs")
	testCmd.PersistentFlags().StringVar(&flags.test, "test", "", "test name pattern to run")
	testCmd.PersistentFlags().StringSliceVar(&flags.features, "features", nil, "cargo features to enable")
	testCmd.PersistentFlags().BoolVar(&flags.noDefaultFeatures, "no-default-features", false, "disable the default cargo features")
	testCmd.PersistentFlags().BoolVar(&flags.noCapture, "no-capture", false, "do not capture test output")
	testCmd.PersistentFlags().BoolVarP(&flags.force, "force", "f", false, "run even in the production environment")

	for _, sub := range []commands.TestSubCommand{commands.TestUnit, commands.TestIntegration, commands.TestAll} {
		testCmd.AddCommand(&cobra.Command{
			Use:   sub.String(),
			Short: testSubCommandShort(sub),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTestSubCommand(cmd, sub, flags)
			},
		})
	}

	return testCmd
}

func testSubCommandShort(sub commands.TestSubCommand) string {
	switch sub {
	case commands.TestUnit:
		return "Run unit tests (lib, bin and example targets)"
	case commands.TestIntegration:
		return "Run integration tests (tests/ directory)"
	default:
		return "Run unit tests, then integration tests"
	}
}

func runTestSubCommand(cmd *cobra.Command, sub commands.TestSubCommand, flags *testFlags) error {
	target, err := commands.ParseTarget(flags.target)
	if err != nil {
		return err
	}

	args := commands.TestCmdArgs{
		Command:           sub,
		Target:            target,
		Exclude:           flags.exclude,
		Only:              flags.only,
		Threads:           flags.threads,
		Jobs:              flags.jobs,
		Test:              flags.test,
		Features:          flags.features,
		NoDefaultFeatures: flags.noDefaultFeatures,
		NoCapture:         flags.noCapture,
		Force:             flags.force,
	}

	err = commands.HandleTestCommand(cmd.Context(), args, environment(), commands.DefaultDeps(cfg.Cargo.Bin))
	if errors.Is(err, commands.ErrBlockedByEnvironment) {
		// The dispatcher already printed the abort message; exit non-zero
		// without repeating it.
		return &ExitError{Code: 1, Err: err}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}
