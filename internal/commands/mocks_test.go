// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"context"

	"xtask-cli/internal/cargo"
	"xtask-cli/internal/workspace"
)

// fakeWorkspace serves a fixed member list and records the kinds requested.
type fakeWorkspace struct {
	members    map[workspace.MemberType][]workspace.Member
	kindsAsked []workspace.MemberType
	err        error
}

func (f *fakeWorkspace) Members(kind workspace.MemberType) ([]workspace.Member, error) {
	f.kindsAsked = append(f.kindsAsked, kind)
	if f.err != nil {
		return nil, f.err
	}
	return f.members[kind], nil
}

// fakeRunner records every request and emulates the real runner's
// exclude/only filtering so spawn counts can be asserted.
type fakeRunner struct {
	memberRuns    []cargo.MemberRequest
	workspaceRuns []cargo.WorkspaceRequest
	runs          []cargo.Request
	ensured       []string
	spawned       []string

	memberErr    map[string]error
	workspaceErr error
	runErr       map[string]error // keyed by first two args joined with a space
	ensureErr    error
}

func (f *fakeRunner) Run(_ context.Context, req cargo.Request) error {
	f.runs = append(f.runs, req)
	if f.runErr != nil {
		key := ""
		if len(req.Args) >= 2 {
			key = req.Args[0] + " " + req.Args[1]
		}
		if err, ok := f.runErr[key]; ok {
			return err
		}
	}
	return nil
}

func (f *fakeRunner) RunForMember(_ context.Context, req cargo.MemberRequest) error {
	f.memberRuns = append(f.memberRuns, req)
	if cargo.ShouldSkip(req.Member, req.Exclude, req.Only) {
		return nil
	}
	f.spawned = append(f.spawned, req.Member)
	if err, ok := f.memberErr[req.Member]; ok {
		return err
	}
	return nil
}

func (f *fakeRunner) RunForWorkspace(_ context.Context, req cargo.WorkspaceRequest) error {
	f.workspaceRuns = append(f.workspaceRuns, req)
	return f.workspaceErr
}

func (f *fakeRunner) EnsureCrateInstalled(_ context.Context, name string) error {
	f.ensured = append(f.ensured, name)
	return f.ensureErr
}

// fakeToolchain serves canned rustup answers.
type fakeToolchain struct {
	nightly    bool
	targets    []string
	targetsErr error
	components []string
}

func (f *fakeToolchain) IsNightly(context.Context) bool {
	return f.nightly
}

func (f *fakeToolchain) InstalledTargets(context.Context) ([]string, error) {
	if f.targetsErr != nil {
		return nil, f.targetsErr
	}
	return f.targets, nil
}

func (f *fakeToolchain) AddComponent(_ context.Context, name string) error {
	f.components = append(f.components, name)
	return nil
}

func crateMembers(names ...string) []workspace.Member {
	members := make([]workspace.Member, 0, len(names))
	for _, name := range names {
		members = append(members, workspace.Member{
			Name: name,
			Path: "crates/" + name,
			Type: workspace.MemberTypeCrate,
		})
	}
	return members
}

func testDeps(ws *fakeWorkspace, runner *fakeRunner, tc *fakeToolchain) Deps {
	deps := Deps{}
	if ws != nil {
		deps.Workspace = ws
	}
	if runner != nil {
		deps.Runner = runner
	}
	if tc != nil {
		deps.Toolchain = tc
	}
	return deps
}
