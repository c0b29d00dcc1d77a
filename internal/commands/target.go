// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"fmt"

	"xtask-cli/internal/workspace"
)

// Target selects which grouping of packages a command operates on.
type Target int

const (
	// TargetWorkspace operates on the whole workspace as one unit. It is a
	// sentinel, not a member list: callers branch on it before discovery.
	TargetWorkspace Target = iota
	// TargetCrates operates on each crate member individually.
	TargetCrates
	// TargetExamples operates on each example member individually.
	TargetExamples
	// TargetAllPackages is a meta-selector expanding to crates then examples.
	// It deliberately excludes TargetWorkspace: a workspace run would repeat
	// every per-member run and double-count results.
	TargetAllPackages
)

// ParseTarget maps a CLI string to a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "workspace":
		return TargetWorkspace, nil
	case "crates":
		return TargetCrates, nil
	case "examples":
		return TargetExamples, nil
	case "all-packages":
		return TargetAllPackages, nil
	default:
		return TargetWorkspace, fmt.Errorf("unknown target %q (expected workspace, crates, examples or all-packages)", s)
	}
}

// String returns the CLI form of the target.
func (t Target) String() string {
	switch t {
	case TargetWorkspace:
		return "workspace"
	case TargetCrates:
		return "crates"
	case TargetExamples:
		return "examples"
	case TargetAllPackages:
		return "all-packages"
	default:
		return "unknown"
	}
}

// PackageTargets returns the targets TargetAllPackages expands to, in fan-out
// order. TargetWorkspace and TargetAllPackages itself are excluded, so the
// expansion terminates in exactly one level.
func PackageTargets() []Target {
	return []Target{TargetCrates, TargetExamples}
}

// memberKind maps a per-member target to the workspace member kind it
// resolves through. Only valid for TargetCrates and TargetExamples.
func memberKind(t Target) workspace.MemberType {
	if t == TargetExamples {
		return workspace.MemberTypeExample
	}
	return workspace.MemberTypeCrate
}
