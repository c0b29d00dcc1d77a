// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"
	"fmt"

	"xtask-cli/internal/cargo"
	"xtask-cli/internal/console"
	"xtask-cli/internal/issue"
	"xtask-cli/internal/sanitizer"
)

// VulnSubCommand selects which vulnerability check to run.
type VulnSubCommand int

const (
	VulnNightlyChecks VulnSubCommand = iota
	VulnAddressSanitizer
	VulnControlFlowIntegrity
	VulnHWAddressSanitizer
	VulnKernelControlFlowIntegrity
	VulnLeakSanitizer
	VulnMemorySanitizer
	VulnMemTagSanitizer
	VulnSafeStack
	VulnShadowCallStack
	VulnThreadSanitizer
	// VulnAll runs the nightly checks plus every sanitizer supported on the
	// default host platform, in fixed order.
	VulnAll
)

var vulnSubCommandNames = map[string]VulnSubCommand{
	"nightly-checks":    VulnNightlyChecks,
	"address":           VulnAddressSanitizer,
	"cfi":               VulnControlFlowIntegrity,
	"hwaddress":         VulnHWAddressSanitizer,
	"kcfi":              VulnKernelControlFlowIntegrity,
	"leak":              VulnLeakSanitizer,
	"memory":            VulnMemorySanitizer,
	"memtag":            VulnMemTagSanitizer,
	"safe-stack":        VulnSafeStack,
	"shadow-call-stack": VulnShadowCallStack,
	"thread":            VulnThreadSanitizer,
	"all":               VulnAll,
}

// ParseVulnSubCommand maps a CLI string to a VulnSubCommand.
func ParseVulnSubCommand(s string) (VulnSubCommand, error) {
	if sub, ok := vulnSubCommandNames[s]; ok {
		return sub, nil
	}
	return VulnAll, fmt.Errorf("unknown vulnerabilities sub-command %q", s)
}

// String returns the CLI form of the sub-command.
func (c VulnSubCommand) String() string {
	for name, sub := range vulnSubCommandNames {
		if sub == c {
			return name
		}
	}
	return "unknown"
}

// sanitizerFor maps a sanitizer sub-command to its sanitizer variant.
func (c VulnSubCommand) sanitizerFor() (sanitizer.Sanitizer, bool) {
	switch c {
	case VulnAddressSanitizer:
		return sanitizer.Address, true
	case VulnControlFlowIntegrity:
		return sanitizer.ControlFlowIntegrity, true
	case VulnHWAddressSanitizer:
		return sanitizer.HWAddress, true
	case VulnKernelControlFlowIntegrity:
		return sanitizer.KernelControlFlowIntegrity, true
	case VulnLeakSanitizer:
		return sanitizer.Leak, true
	case VulnMemorySanitizer:
		return sanitizer.Memory, true
	case VulnMemTagSanitizer:
		return sanitizer.MemTag, true
	case VulnSafeStack:
		return sanitizer.SafeStack, true
	case VulnShadowCallStack:
		return sanitizer.ShadowCallStack, true
	case VulnThreadSanitizer:
		return sanitizer.Thread, true
	default:
		return 0, false
	}
}

// hostDefaultSanitizers is the fixed subset VulnAll fans out over: the
// sanitizers supported on x86_64-unknown-linux-gnu, the default host
// platform.
// TODO: derive this from the host's default toolchain triple instead.
func hostDefaultSanitizers() []sanitizer.Sanitizer {
	return []sanitizer.Sanitizer{
		sanitizer.Address,
		sanitizer.Leak,
		sanitizer.Memory,
		sanitizer.SafeStack,
		sanitizer.Thread,
	}
}

// VulnerabilitiesCmdArgs is the typed configuration for the vulnerabilities
// command family.
type VulnerabilitiesCmdArgs struct {
	// Command is the check to run.
	Command VulnSubCommand
	// Force overrides the production-environment guard.
	Force bool
}

// HandleVulnerabilitiesCommand is the entry point for the vulnerabilities
// command family. Every sub-command requires the nightly toolchain; on any
// other channel it reports remediation guidance and performs no action.
func HandleVulnerabilitiesCommand(ctx context.Context, args VulnerabilitiesCmdArgs, env Environment, deps Deps) error {
	deps = deps.withDefaults()

	if !CheckEnvironment(args.Force, env) {
		return ErrBlockedByEnvironment
	}

	return runVulnSubCommand(ctx, args.Command, deps)
}

func runVulnSubCommand(ctx context.Context, sub VulnSubCommand, deps Deps) error {
	switch sub {
	case VulnNightlyChecks:
		return runCargoCareful(ctx, deps)
	case VulnAll:
		if err := runCargoCareful(ctx, deps); err != nil {
			return err
		}
		for _, s := range hostDefaultSanitizers() {
			if err := runSanitizerTests(ctx, s, deps); err != nil {
				return err
			}
		}
		return nil
	default:
		s, ok := sub.sanitizerFor()
		if !ok {
			return fmt.Errorf("no sanitizer mapped for sub-command %q", sub)
		}
		return runSanitizerTests(ctx, s, deps)
	}
}

// runCargoCareful runs the cargo-careful nightly-only static checks.
func runCargoCareful(ctx context.Context, deps Deps) error {
	if !deps.Toolchain.IsNightly(ctx) {
		reportNightlyRequired()
		return nil
	}

	if err := deps.Runner.EnsureCrateInstalled(ctx, "cargo-careful"); err != nil {
		return err
	}
	if err := deps.Toolchain.AddComponent(ctx, "rust-src"); err != nil {
		return err
	}

	// prepare careful sysroot
	console.Group("Cargo: careful setup")
	err := deps.Runner.Run(ctx, cargo.Request{
		Args:           []string{"careful", "setup"},
		FailureMessage: "Error preparing cargo sysroot.",
	})
	console.EndGroup()
	if err != nil {
		return err
	}

	console.Group("Cargo: run careful checks")
	err = deps.Runner.Run(ctx, cargo.Request{
		Args:           []string{"careful", "test"},
		FailureMessage: "Cargo careful test has errors.",
	})
	console.EndGroup()
	return err
}

// runSanitizerTests runs the test suite under one sanitizer, skipping with an
// informational message when none of the installed targets supports it.
func runSanitizerTests(ctx context.Context, s sanitizer.Sanitizer, deps Deps) error {
	if !deps.Toolchain.IsNightly(ctx) {
		reportNightlyRequired()
		return nil
	}

	console.Group("Sanitizer: %s", s)
	defer console.EndGroup()

	installed, err := deps.Toolchain.InstalledTargets(ctx)
	if err != nil {
		return err
	}
	if !s.IsSupported(installed) {
		console.Info("No supported target found for this sanitizer.")
		return nil
	}

	cmdArgs := []string{"test", "--", "--color=always", "--no-capture"}
	cmdArgs = append(cmdArgs, s.ExtraCargoArgs()...)

	return deps.Runner.Run(ctx, cargo.Request{
		Args:           cmdArgs,
		Env:            s.Env(),
		FailureMessage: "Sanitizer found issues!",
	})
}

// reportNightlyRequired renders the nightly-toolchain remediation guidance.
// This is a warning-level no-op outcome, not a failure.
func reportNightlyRequired() {
	known := issue.Lookup(issue.NightlyToolchainRequiredId)
	rendered, err := known.Render("")
	if err != nil {
		console.Error("This command requires the nightly toolchain (rustup toolchain install nightly)")
		return
	}
	console.Error("This command requires the nightly toolchain")
	fmt.Print(rendered)
}
