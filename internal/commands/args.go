// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// WarnIgnoredOnlyArgs is logged when per-member filters are given for a
// whole-workspace run, where no per-member boundary exists to apply them.
const WarnIgnoredOnlyArgs = "--only arguments are ignored when the target is the whole workspace"

// TestSubCommand selects which test phase to run.
type TestSubCommand int

const (
	TestUnit TestSubCommand = iota
	TestIntegration
	// TestAll fans out over every other sub-command in declaration order.
	TestAll
)

// ParseTestSubCommand maps a CLI string to a TestSubCommand.
func ParseTestSubCommand(s string) (TestSubCommand, error) {
	switch s {
	case "unit":
		return TestUnit, nil
	case "integration":
		return TestIntegration, nil
	case "all":
		return TestAll, nil
	default:
		return TestAll, fmt.Errorf("unknown test sub-command %q", s)
	}
}

// String returns the CLI form of the sub-command.
func (c TestSubCommand) String() string {
	switch c {
	case TestUnit:
		return "unit"
	case TestIntegration:
		return "integration"
	default:
		return "all"
	}
}

// testSubCommands returns the non-composite sub-commands TestAll expands to,
// in fan-out order. TestAll itself is excluded so the expansion cannot
// recurse.
func testSubCommands() []TestSubCommand {
	return []TestSubCommand{TestUnit, TestIntegration}
}

// TestCmdArgs is the typed configuration for the test command family.
// It is treated as immutable for the duration of one invocation; fan-out
// copies it and changes only the Command field.
type TestCmdArgs struct {
	// Command is the test phase to run.
	Command TestSubCommand
	// Target selects the package grouping to operate on.
	Target Target
	// Exclude lists member names to skip at the execution boundary.
	Exclude []string
	// Only restricts execution to the listed members when non-empty.
	// Filtering happens per member, never during target resolution.
	Only []string
	// Threads caps the test harness thread count; 0 means unset.
	Threads int
	// Jobs caps cargo's parallel job count; 0 means unset.
	Jobs int
	// Test is a test name pattern forwarded to the harness.
	Test string
	// Features is the cargo feature list to enable.
	Features []string
	// NoDefaultFeatures disables the crate's default features.
	NoDefaultFeatures bool
	// NoCapture disables test output capture.
	NoCapture bool
	// Force overrides the production-environment guard.
	Force bool
}

// appendOptionalArgs extends a command skeleton with the optional cargo and
// test-harness flags, in fixed order. It is pure: same args in, same tokens
// out, and the configuration object is never mutated.
func appendOptionalArgs(cmdArgs []string, args *TestCmdArgs) []string {
	// cargo options
	if args.Jobs > 0 {
		cmdArgs = append(cmdArgs, "--jobs", strconv.Itoa(args.Jobs))
	}
	if len(args.Features) > 0 {
		cmdArgs = append(cmdArgs, "--features", strings.Join(args.Features, ","))
	}
	if args.NoDefaultFeatures {
		cmdArgs = append(cmdArgs, "--no-default-features")
	}
	// test harness options; --color=always survives output capture
	cmdArgs = append(cmdArgs, "--", "--color=always")
	if args.Threads > 0 {
		cmdArgs = append(cmdArgs, "--test-threads", strconv.Itoa(args.Threads))
	}
	if args.NoCapture {
		cmdArgs = append(cmdArgs, "--nocapture")
	}
	return cmdArgs
}
