// SPDX-License-Identifier: MPL-2.0

// Package commands contains the decision core of xtask: target resolution,
// cargo argument composition, the test and vulnerabilities dispatchers, and
// the production-environment guard.
//
// All process spawning and workspace discovery happens through the injected
// Deps capability set, so the dispatch logic is testable without a real
// toolchain.
package commands
