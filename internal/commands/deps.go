// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"

	"xtask-cli/internal/cargo"
	"xtask-cli/internal/rustup"
	"xtask-cli/internal/workspace"
)

type (
	// WorkspaceService resolves workspace members by kind. Discovery order
	// must be deterministic per invocation.
	WorkspaceService interface {
		Members(kind workspace.MemberType) ([]workspace.Member, error)
	}

	// ProcessRunner spawns toolchain processes. Implementations apply
	// exclude/only filtering at the per-member boundary and classify
	// not-found stderr patterns as soft skips.
	ProcessRunner interface {
		Run(ctx context.Context, req cargo.Request) error
		RunForMember(ctx context.Context, req cargo.MemberRequest) error
		RunForWorkspace(ctx context.Context, req cargo.WorkspaceRequest) error
		EnsureCrateInstalled(ctx context.Context, name string) error
	}

	// ToolchainService answers rustup queries about the active toolchain.
	ToolchainService interface {
		IsNightly(ctx context.Context) bool
		InstalledTargets(ctx context.Context) ([]string, error)
		AddComponent(ctx context.Context, name string) error
	}

	// Deps is the injected capability set for the dispatchers. Nil fields
	// are replaced with production defaults, so tests can supply mocks for
	// exactly the collaborators they care about.
	Deps struct {
		Workspace WorkspaceService
		Runner    ProcessRunner
		Toolchain ToolchainService
	}
)

// DefaultDeps builds the production capability set. cargoBin overrides the
// cargo executable name; empty means "cargo".
func DefaultDeps(cargoBin string) Deps {
	return Deps{
		Workspace: &workspace.Service{},
		Runner:    &cargo.Runner{Bin: cargoBin},
		Toolchain: &rustup.Toolchain{},
	}
}

// withDefaults fills nil fields with production defaults.
func (d Deps) withDefaults() Deps {
	if d.Workspace == nil {
		d.Workspace = &workspace.Service{}
	}
	if d.Runner == nil {
		d.Runner = &cargo.Runner{}
	}
	if d.Toolchain == nil {
		d.Toolchain = &rustup.Toolchain{}
	}
	return d
}
