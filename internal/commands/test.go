// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"fmt"

	"xtask-cli/internal/cargo"
	"xtask-cli/internal/console"
	"xtask-cli/internal/workspace"
)

// unitGroupPattern extracts the test binary name from cargo's "Running
// target/<profile>/deps/<name>-<hash>" lines, used to label workspace-run
// output groups.
const unitGroupPattern = `.*target/[^/]+/deps/([^-\s]+)`

// HandleTestCommand is the entry point for the test command family.
// The environment guard runs here, exactly once, before any resolution or
// composition; composite fan-out re-enters dispatchTest below it.
func HandleTestCommand(ctx context.Context, args TestCmdArgs, env Environment, deps Deps) error {
	deps = deps.withDefaults()

	if args.Target == TargetWorkspace && len(args.Only) > 0 {
		console.Warn("%s", WarnIgnoredOnlyArgs)
	}
	if !CheckEnvironment(args.Force, env) {
		return ErrBlockedByEnvironment
	}

	return dispatchTest(ctx, args, deps)
}

// dispatchTest routes a sub-command to its terminal action, expanding
// TestAll into the ordered non-composite sub-commands. The first failure
// aborts the remaining fan-out.
func dispatchTest(ctx context.Context, args TestCmdArgs, deps Deps) error {
	switch args.Command {
	case TestUnit:
		return runUnit(ctx, args.Target, &args, deps)
	case TestIntegration:
		return runIntegration(ctx, args.Target, &args, deps)
	default: // TestAll
		for _, sub := range testSubCommands() {
			next := args
			next.Command = sub
			if err := dispatchTest(ctx, next, deps); err != nil {
				return err
			}
		}
		return nil
	}
}

func runUnit(ctx context.Context, target Target, args *TestCmdArgs, deps Deps) error {
	switch target {
	case TargetWorkspace:
		console.Info("Workspace Unit Tests")
		cmdArgs := []string{"test", "--workspace", "--lib", "--bins", "--examples"}
		if args.Test != "" {
			cmdArgs = append(cmdArgs, args.Test)
		}
		cmdArgs = append(cmdArgs, "--color", "always")
		cmdArgs = appendOptionalArgs(cmdArgs, args)
		return deps.Runner.RunForWorkspace(ctx, cargo.WorkspaceRequest{
			Args:            cmdArgs,
			Exclude:         args.Exclude,
			GroupPattern:    unitGroupPattern,
			GroupLabel:      "Unit Tests",
			FailureMessage:  "Workspace Unit Tests failed",
			NotFoundPattern: "no library targets found",
			NotFoundMessage: "No library found to test for in workspace.",
		})
	case TargetCrates, TargetExamples:
		members, err := deps.Workspace.Members(memberKind(target))
		if err != nil {
			return err
		}
		for _, member := range members {
			if err := runUnitTest(ctx, member, args, deps); err != nil {
				return err
			}
		}
		return nil
	default: // TargetAllPackages
		for _, t := range PackageTargets() {
			if err := runUnit(ctx, t, args, deps); err != nil {
				return err
			}
		}
		return nil
	}
}

func runUnitTest(ctx context.Context, member workspace.Member, args *TestCmdArgs, deps Deps) error {
	console.Group("Unit Tests: %s", member.Name)
	defer console.EndGroup()

	cmdArgs := []string{"test"}
	if args.Test != "" {
		cmdArgs = append(cmdArgs, args.Test)
	}
	cmdArgs = append(cmdArgs, "--lib", "--bins", "--examples", "-p", member.Name, "--color=always")
	cmdArgs = appendOptionalArgs(cmdArgs, args)

	return deps.Runner.RunForMember(ctx, cargo.MemberRequest{
		Member:          member.Name,
		Args:            cmdArgs,
		Exclude:         args.Exclude,
		Only:            args.Only,
		FailureMessage:  fmt.Sprintf("Failed to execute unit test for '%s'", member.Name),
		NotFoundPattern: "no library targets found",
		NotFoundMessage: fmt.Sprintf("No library found to test for in the crate '%s'.", member.Name),
	})
}

func runIntegration(ctx context.Context, target Target, args *TestCmdArgs, deps Deps) error {
	switch target {
	case TargetWorkspace:
		console.Info("Workspace Integration Tests")
		pattern := args.Test
		if pattern == "" {
			pattern = "*"
		}
		cmdArgs := []string{"test", "--workspace", "--test", pattern, "--color", "always"}
		cmdArgs = appendOptionalArgs(cmdArgs, args)
		return deps.Runner.RunForWorkspace(ctx, cargo.WorkspaceRequest{
			Args:            cmdArgs,
			Exclude:         args.Exclude,
			GroupPattern:    unitGroupPattern,
			GroupLabel:      "Integration Tests",
			FailureMessage:  "Workspace Integration Tests failed",
			NotFoundPattern: "no test target matches pattern",
			NotFoundMessage: "No tests found matching the pattern `test_*` in workspace.",
		})
	case TargetCrates, TargetExamples:
		members, err := deps.Workspace.Members(memberKind(target))
		if err != nil {
			return err
		}
		for _, member := range members {
			if err := runIntegrationTest(ctx, member, args, deps); err != nil {
				return err
			}
		}
		return nil
	default: // TargetAllPackages
		for _, t := range PackageTargets() {
			if err := runIntegration(ctx, t, args, deps); err != nil {
				return err
			}
		}
		return nil
	}
}

func runIntegrationTest(ctx context.Context, member workspace.Member, args *TestCmdArgs, deps Deps) error {
	console.Group("Integration Tests: %s", member.Name)
	defer console.EndGroup()

	cmdArgs := []string{"test", "--test", "*", "-p", member.Name, "--color", "always"}
	cmdArgs = appendOptionalArgs(cmdArgs, args)

	return deps.Runner.RunForMember(ctx, cargo.MemberRequest{
		Member:          member.Name,
		Args:            cmdArgs,
		Exclude:         args.Exclude,
		Only:            args.Only,
		FailureMessage:  fmt.Sprintf("Failed to execute integration test for '%s'", member.Name),
		NotFoundPattern: "no test target matches pattern",
		NotFoundMessage: fmt.Sprintf("No tests found matching the pattern `test_*` for '%s'.", member.Name),
	})
}
