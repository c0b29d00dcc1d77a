// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"reflect"
	"slices"
	"testing"
)

func TestAppendOptionalArgs_FixedOrder(t *testing.T) {
	args := &TestCmdArgs{
		Jobs:              2,
		Features:          []string{"std", "cuda"},
		NoDefaultFeatures: true,
		Threads:           8,
		NoCapture:         true,
	}

	got := appendOptionalArgs([]string{"test"}, args)
	want := []string{
		"test",
		"--jobs", "2",
		"--features", "std,cuda",
		"--no-default-features",
		"--", "--color=always",
		"--test-threads", "8",
		"--nocapture",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("appendOptionalArgs() = %v, want %v", got, want)
	}
}

func TestAppendOptionalArgs_NoOptions(t *testing.T) {
	got := appendOptionalArgs([]string{"test"}, &TestCmdArgs{})
	want := []string{"test", "--", "--color=always"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("appendOptionalArgs() = %v, want %v", got, want)
	}
}

func TestAppendOptionalArgs_JobsAdjacency(t *testing.T) {
	got := appendOptionalArgs(nil, &TestCmdArgs{Jobs: 4})

	idx := slices.Index(got, "--jobs")
	if idx < 0 || idx+1 >= len(got) || got[idx+1] != "4" {
		t.Errorf("--jobs must be immediately followed by its value: %v", got)
	}
}

func TestAppendOptionalArgs_EmptyFeatures(t *testing.T) {
	got := appendOptionalArgs(nil, &TestCmdArgs{Features: []string{}})
	if slices.Contains(got, "--features") {
		t.Errorf("empty features list must not emit --features: %v", got)
	}
}

func TestAppendOptionalArgs_NoCapture(t *testing.T) {
	got := appendOptionalArgs(nil, &TestCmdArgs{NoCapture: true})
	if !slices.Contains(got, "--nocapture") {
		t.Errorf("--nocapture missing: %v", got)
	}
}

func TestAppendOptionalArgs_Deterministic(t *testing.T) {
	args := &TestCmdArgs{Jobs: 3, Features: []string{"std"}, Threads: 2}

	first := appendOptionalArgs([]string{"test"}, args)
	second := appendOptionalArgs([]string{"test"}, args)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("composition not deterministic: %v vs %v", first, second)
	}
}

func TestAppendOptionalArgs_DoesNotMutateConfig(t *testing.T) {
	args := &TestCmdArgs{Jobs: 3, Features: []string{"std"}, NoCapture: true}
	snapshot := *args
	snapshot.Features = slices.Clone(args.Features)

	appendOptionalArgs([]string{"test"}, args)

	if args.Jobs != snapshot.Jobs || args.NoCapture != snapshot.NoCapture ||
		!reflect.DeepEqual(args.Features, snapshot.Features) {
		t.Errorf("config mutated: %+v vs %+v", args, snapshot)
	}
}

func TestParseTestSubCommand(t *testing.T) {
	for _, sub := range []TestSubCommand{TestUnit, TestIntegration, TestAll} {
		parsed, err := ParseTestSubCommand(sub.String())
		if err != nil {
			t.Errorf("ParseTestSubCommand(%q) error: %v", sub.String(), err)
		}
		if parsed != sub {
			t.Errorf("ParseTestSubCommand(%q) = %v, want %v", sub.String(), parsed, sub)
		}
	}

	if _, err := ParseTestSubCommand("bench"); err == nil {
		t.Error("ParseTestSubCommand should reject unknown sub-commands")
	}
}

func TestTestSubCommands_ExcludesAll(t *testing.T) {
	for _, sub := range testSubCommands() {
		if sub == TestAll {
			t.Error("TestAll must not be part of its own expansion")
		}
	}
	if len(testSubCommands()) != 2 {
		t.Errorf("expected 2 non-composite sub-commands, got %v", testSubCommands())
	}
}
