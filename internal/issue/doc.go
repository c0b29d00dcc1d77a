// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Errors carry the operation that failed, the resource involved, and concrete
// remediation steps. Known failure modes (such as a missing nightly toolchain)
// are registered as Issues with Markdown guidance rendered in the terminal.
package issue
