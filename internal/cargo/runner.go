// SPDX-License-Identifier: MPL-2.0

// Package cargo spawns cargo processes and classifies their outcomes.
//
// The runner applies exclude/only filtering at the per-member boundary,
// streams process output, and treats "target not found" stderr patterns as
// soft skips instead of hard failures. All invocations are synchronous: a
// process runs to completion before the next one starts.
package cargo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"strings"

	"xtask-cli/internal/console"
	"xtask-cli/internal/issue"
)

type (
	// Request describes one plain process invocation.
	Request struct {
		// Args are passed to the executable verbatim.
		Args []string
		// Env holds extra environment variables layered over the parent env.
		Env map[string]string
		// FailureMessage is the operation description used on hard failure.
		FailureMessage string
	}

	// MemberRequest scopes an invocation to a single workspace member.
	MemberRequest struct {
		// Member is the package name the invocation is scoped to.
		Member string
		Args   []string
		// Exclude lists member names to skip silently.
		Exclude []string
		// Only restricts execution to the listed members when non-empty.
		Only           []string
		FailureMessage string
		// NotFoundPattern matches stderr output that means "nothing to run
		// here"; combined with NotFoundMessage it downgrades the failure to
		// an informational skip.
		NotFoundPattern string
		NotFoundMessage string
	}

	// WorkspaceRequest runs an invocation at whole-workspace granularity.
	WorkspaceRequest struct {
		Args []string
		// Exclude is forwarded to cargo as --exclude flags.
		Exclude []string
		// GroupPattern is a regexp with one capture group; matching stdout
		// lines open a new console group labeled "<GroupLabel>: <capture>".
		GroupPattern    string
		GroupLabel      string
		FailureMessage  string
		NotFoundPattern string
		NotFoundMessage string
	}
)

// Runner executes cargo processes. The zero value runs "cargo" from PATH.
type Runner struct {
	// Bin is the cargo executable name or path; empty means "cargo".
	Bin string
}

func (r *Runner) bin() string {
	if r.Bin != "" {
		return r.Bin
	}
	return "cargo"
}

// ShouldSkip reports whether a member is filtered out by the exclude/only
// lists. Filtering happens here, at the execution boundary, never during
// target resolution.
func ShouldSkip(member string, exclude, only []string) bool {
	if slices.Contains(exclude, member) {
		return true
	}
	if len(only) > 0 && !slices.Contains(only, member) {
		return true
	}
	return false
}

// Run executes a plain process invocation, streaming output to the console.
func (r *Runner) Run(ctx context.Context, req Request) error {
	return r.run(ctx, req.Args, req.Env, os.Stdout, req.FailureMessage, "", "")
}

// RunForMember executes an invocation scoped to one workspace member,
// applying exclude/only filtering first.
func (r *Runner) RunForMember(ctx context.Context, req MemberRequest) error {
	if ShouldSkip(req.Member, req.Exclude, req.Only) {
		console.Debug("skipping '%s' (filtered by exclude/only)", req.Member)
		return nil
	}
	return r.run(ctx, req.Args, nil, os.Stdout, req.FailureMessage, req.NotFoundPattern, req.NotFoundMessage)
}

// RunForWorkspace executes an invocation across the whole workspace,
// forwarding excludes to cargo and optionally grouping output per test
// binary.
func (r *Runner) RunForWorkspace(ctx context.Context, req WorkspaceRequest) error {
	args := slices.Clone(req.Args)
	for _, excluded := range req.Exclude {
		args = append(args, "--exclude", excluded)
	}

	var stdout io.Writer = os.Stdout
	var groups *groupWriter
	if req.GroupPattern != "" {
		pattern, err := regexp.Compile(req.GroupPattern)
		if err != nil {
			return issue.WrapWithOperation(err, "compile output group pattern")
		}
		groups = newGroupWriter(os.Stdout, pattern, req.GroupLabel)
		stdout = groups
	}

	err := r.run(ctx, args, nil, stdout, req.FailureMessage, req.NotFoundPattern, req.NotFoundMessage)
	if groups != nil {
		groups.Close()
	}
	return err
}

// run spawns the process and classifies the result. Stderr is streamed and
// mirrored into a buffer so not-found patterns can be matched after exit.
func (r *Runner) run(ctx context.Context, args []string, env map[string]string, stdout io.Writer, failureMessage, notFoundPattern, notFoundMessage string) error {
	cmd := exec.CommandContext(ctx, r.bin(), args...)

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)
	cmd.Stdin = os.Stdin

	if len(env) > 0 {
		cmd.Env = os.Environ()
		for key, value := range env {
			cmd.Env = append(cmd.Env, key+"="+value)
		}
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if notFoundPattern != "" && notFoundMessage != "" && matchesNotFound(stderrBuf.String(), notFoundPattern) {
		console.Info("%s", notFoundMessage)
		return nil
	}

	if _, ok := err.(*exec.ExitError); ok {
		return fmt.Errorf("%s: %w", failureMessage, err)
	}
	return issue.NewErrorContext().
		WithOperation("spawn process").
		WithResource(r.bin()).
		WithSuggestion("Check that the executable is installed and on PATH").
		Wrap(err).
		BuildError()
}

// matchesNotFound reports whether stderr output matches the soft-skip
// pattern. The pattern is tried as a regexp and falls back to a substring
// match if it does not compile.
func matchesNotFound(stderr, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return strings.Contains(stderr, pattern)
	}
	return re.MatchString(stderr)
}
