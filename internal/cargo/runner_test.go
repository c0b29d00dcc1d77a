// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"context"
	"testing"
)

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		name    string
		member  string
		exclude []string
		only    []string
		want    bool
	}{
		{"no filters", "burn-core", nil, nil, false},
		{"excluded", "burn-io", []string{"burn-io"}, nil, true},
		{"not excluded", "burn-core", []string{"burn-io"}, nil, false},
		{"in only set", "burn-core", nil, []string{"burn-core"}, false},
		{"outside only set", "burn-io", nil, []string{"burn-core"}, true},
		{"excluded wins over only", "burn-core", []string{"burn-core"}, []string{"burn-core"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSkip(tt.member, tt.exclude, tt.only); got != tt.want {
				t.Errorf("ShouldSkip(%q, %v, %v) = %v, want %v", tt.member, tt.exclude, tt.only, got, tt.want)
			}
		})
	}
}

func TestMatchesNotFound(t *testing.T) {
	tests := []struct {
		name    string
		stderr  string
		pattern string
		want    bool
	}{
		{"substring match", "error: no library targets found in package", "no library targets found", true},
		{"no match", "error: could not compile `burn-core`", "no library targets found", false},
		{"regexp match", "error: no test target matches pattern `nope`", "no test target matches pattern", true},
		{"empty stderr", "", "no library targets found", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesNotFound(tt.stderr, tt.pattern); got != tt.want {
				t.Errorf("matchesNotFound(%q, %q) = %v, want %v", tt.stderr, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestRunForMember_SkipsFilteredMember(t *testing.T) {
	// The binary would fail if spawned; the filter must prevent the spawn.
	r := &Runner{Bin: "/nonexistent/cargo"}
	err := r.RunForMember(context.Background(), MemberRequest{
		Member:  "burn-io",
		Args:    []string{"test"},
		Exclude: []string{"burn-io"},
	})
	if err != nil {
		t.Errorf("filtered member should not spawn a process, got %v", err)
	}
}

func TestRun_SuccessAndFailure(t *testing.T) {
	ok := &Runner{Bin: "true"}
	if err := ok.Run(context.Background(), Request{FailureMessage: "should not fail"}); err != nil {
		t.Errorf("Run(true) error: %v", err)
	}

	fail := &Runner{Bin: "false"}
	if err := fail.Run(context.Background(), Request{FailureMessage: "expected failure"}); err == nil {
		t.Error("Run(false) should return an error")
	}
}

func TestRun_SpawnErrorIsActionable(t *testing.T) {
	r := &Runner{Bin: "/nonexistent/cargo"}
	err := r.Run(context.Background(), Request{FailureMessage: "spawn"})
	if err == nil {
		t.Fatal("expected spawn error")
	}
}

func TestRunForMember_NotFoundIsSoftSkip(t *testing.T) {
	// sh emulates cargo reporting "no library targets found" on stderr.
	r := &Runner{Bin: "sh"}
	err := r.RunForMember(context.Background(), MemberRequest{
		Member:          "burn-core",
		Args:            []string{"-c", "echo 'error: no library targets found' >&2; exit 101"},
		FailureMessage:  "unit test failed",
		NotFoundPattern: "no library targets found",
		NotFoundMessage: "No library found to test for in the crate 'burn-core'.",
	})
	if err != nil {
		t.Errorf("not-found stderr should be a soft skip, got %v", err)
	}
}

func TestRunForMember_OtherFailureIsHard(t *testing.T) {
	r := &Runner{Bin: "sh"}
	err := r.RunForMember(context.Background(), MemberRequest{
		Member:          "burn-core",
		Args:            []string{"-c", "echo 'error: could not compile' >&2; exit 101"},
		FailureMessage:  "unit test failed",
		NotFoundPattern: "no library targets found",
		NotFoundMessage: "No library found.",
	})
	if err == nil {
		t.Error("non-matching failure should propagate")
	}
}

func TestInstallListContains(t *testing.T) {
	out := "cargo-careful v0.4.0:\n    cargo-careful\nripgrep v14.0.0:\n    rg\n"

	if !installListContains(out, "cargo-careful") {
		t.Error("cargo-careful should be detected as installed")
	}
	if installListContains(out, "cargo-audit") {
		t.Error("cargo-audit should not be detected as installed")
	}
	// A binary name listed under a crate is not a crate entry.
	if installListContains(out, "rg") {
		t.Error("binary names must not match crate entries")
	}
}
