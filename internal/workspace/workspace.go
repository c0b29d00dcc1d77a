// SPDX-License-Identifier: MPL-2.0

// Package workspace discovers the members of a cargo workspace by reading
// manifest metadata from Cargo.toml files.
//
// Discovery is deterministic: members are returned in root-manifest order,
// with glob patterns expanded in sorted path order, so repeated invocations
// produce identical sequences (stable CI logs depend on this).
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"xtask-cli/internal/issue"
)

// MemberType distinguishes the two kinds of workspace members.
type MemberType int

const (
	// MemberTypeCrate is a regular library or binary crate.
	MemberTypeCrate MemberType = iota
	// MemberTypeExample is a package living under the examples/ directory.
	MemberTypeExample
)

// Member is one package of the workspace.
type Member struct {
	// Name is the package name from the member's Cargo.toml.
	Name string
	// Path is the member directory relative to the workspace root.
	Path string
	// Type classifies the member as crate or example.
	Type MemberType
}

// manifest models the subset of Cargo.toml we need.
type manifest struct {
	Workspace *workspaceTable `toml:"workspace"`
	Package   *packageTable   `toml:"package"`
}

type workspaceTable struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

type packageTable struct {
	Name string `toml:"name"`
}

// Service discovers workspace members from a root directory.
// The zero value discovers from the current directory.
type Service struct {
	// RootDir is the workspace root; empty means ".".
	RootDir string
}

// Members returns the workspace members of the given kind, in discovery order.
// An empty result is valid: a workspace without examples is not an error.
func (s *Service) Members(kind MemberType) ([]Member, error) {
	root := s.RootDir
	if root == "" {
		root = "."
	}

	all, err := discover(root)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(all))
	for _, m := range all {
		if m.Type == kind {
			members = append(members, m)
		}
	}
	return members, nil
}

func discover(root string) ([]Member, error) {
	manifestPath := filepath.Join(root, "Cargo.toml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load workspace manifest").
			WithResource(manifestPath).
			WithSuggestion("Run xtask from the workspace root").
			Wrap(err).
			Build()
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse workspace manifest").
			WithResource(manifestPath).
			WithSuggestion("Check the TOML syntax of the root Cargo.toml").
			Wrap(err).
			Build()
	}
	if m.Workspace == nil {
		return nil, issue.NewErrorContext().
			WithOperation("discover workspace members").
			WithResource(manifestPath).
			WithSuggestion("Declare a [workspace] table with a members list").
			Build()
	}

	excluded := make(map[string]bool, len(m.Workspace.Exclude))
	for _, e := range m.Workspace.Exclude {
		excluded[filepath.ToSlash(e)] = true
	}

	var members []Member
	for _, pattern := range m.Workspace.Members {
		dirs, err := expandMemberPattern(root, pattern)
		if err != nil {
			return nil, issue.WrapWithOperation(err, "expand workspace member pattern")
		}
		for _, dir := range dirs {
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				return nil, issue.WrapWithOperation(err, "resolve workspace member path")
			}
			rel = filepath.ToSlash(rel)
			if excluded[rel] {
				continue
			}

			name, ok, err := readPackageName(dir)
			if err != nil {
				return nil, err
			}
			if !ok {
				// Directories matched by a glob without a manifest are not members.
				continue
			}

			members = append(members, Member{
				Name: name,
				Path: rel,
				Type: classify(rel),
			})
		}
	}

	return members, nil
}

// expandMemberPattern resolves one members entry to concrete directories.
// filepath.Glob returns sorted paths, which keeps discovery order stable.
func expandMemberPattern(root, pattern string) ([]string, error) {
	full := filepath.Join(root, filepath.FromSlash(pattern))
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{full}, nil
	}
	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("invalid member pattern %q: %w", pattern, err)
	}
	var dirs []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, match)
	}
	return dirs, nil
}

func readPackageName(dir string) (string, bool, error) {
	manifestPath := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, issue.NewErrorContext().
			WithOperation("read member manifest").
			WithResource(manifestPath).
			Wrap(err).
			Build()
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", false, issue.NewErrorContext().
			WithOperation("parse member manifest").
			WithResource(manifestPath).
			Wrap(err).
			Build()
	}
	if m.Package == nil || m.Package.Name == "" {
		// Fall back to the directory name for virtual members.
		return filepath.Base(dir), true, nil
	}
	return m.Package.Name, true, nil
}

// classify decides the member kind from its workspace-relative path.
// Anything rooted in examples/ is an example, everything else a crate.
func classify(rel string) MemberType {
	first, _, _ := strings.Cut(rel, "/")
	if first == "examples" {
		return MemberTypeExample
	}
	return MemberTypeCrate
}
