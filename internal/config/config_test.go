// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer SetConfigDirOverride("")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Cargo.Bin != "cargo" {
		t.Errorf("Cargo.Bin = %q, want cargo", cfg.Cargo.Bin)
	}
	if cfg.UI.Verbose {
		t.Error("UI.Verbose should default to false")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("environment: production\ncargo:\n  bin: cargo-nightly\nui:\n  verbose: true\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	SetConfigDirOverride(dir)
	defer SetConfigDirOverride("")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Cargo.Bin != "cargo-nightly" {
		t.Errorf("Cargo.Bin = %q, want cargo-nightly", cfg.Cargo.Bin)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer SetConfigDirOverride("")
	t.Setenv("XTASK_ENVIRONMENT", "staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", cfg.Environment)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.yaml"))
	defer SetConfigFilePathOverride("")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for a missing explicit config file")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("environment: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	SetConfigFilePathOverride(path)
	defer SetConfigFilePathOverride("")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}
