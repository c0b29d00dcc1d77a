// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"errors"

	"xtask-cli/internal/console"
)

// Environment names the deployment environment an invocation runs in.
type Environment int

const (
	EnvDevelopment Environment = iota
	EnvStaging
	EnvProduction
)

// ErrBlockedByEnvironment signals that execution was refused by the
// production guard. It maps to a non-zero exit code, not an error report:
// the guard already logged why.
var ErrBlockedByEnvironment = errors.New("execution blocked in production environment")

// ParseEnvironment maps a configuration string to an Environment.
// Anything unrecognized is treated as development.
func ParseEnvironment(s string) Environment {
	switch s {
	case "production":
		return EnvProduction
	case "staging":
		return EnvStaging
	default:
		return EnvDevelopment
	}
}

// String returns the configuration form of the environment.
func (e Environment) String() string {
	switch e {
	case EnvProduction:
		return "production"
	case EnvStaging:
		return "staging"
	default:
		return "development"
	}
}

// CheckEnvironment reports whether execution may proceed in the given
// environment. Running in production is refused unless force is set; a
// forced production run is logged so the override stays auditable.
//
// The guard runs exactly once per top-level invocation, before any target
// resolution or argument composition.
func CheckEnvironment(force bool, env Environment) bool {
	if env == EnvProduction {
		if force {
			console.Warn("Force running tests in production (--force argument is set)")
			return true
		}
		console.Info("Abort tests to avoid running them in production!")
		return false
	}
	return true
}
