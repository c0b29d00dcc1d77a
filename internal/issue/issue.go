// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
)

// Id identifies a known failure mode with registered remediation guidance.
type Id int

const (
	NightlyToolchainRequiredId Id = iota + 1
	WorkspaceManifestNotFoundId
)

// MarkdownMsg is Markdown text that will be rendered in the terminal.
type MarkdownMsg string

// Issue pairs a known failure mode with Markdown remediation guidance.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue guidance with the given glamour style path.
// An empty stylePath selects the default dark style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// render is swappable in tests to avoid terminal-dependent output.
var render = glamour.Render

var (
	nightlyToolchainRequiredIssue = &Issue{
		id: NightlyToolchainRequiredId,
		mdMsg: `
# Nightly toolchain required

Sanitizers and cargo-careful rely on unstable compiler flags that are only
available on the nightly channel.

## Things you can try
- Install and select the nightly toolchain:
~~~
$ rustup toolchain install nightly
$ rustup override set nightly
~~~
- Or run a single invocation on nightly:
~~~
$ rustup run nightly cargo xtask vulnerabilities
~~~`,
	}

	workspaceManifestNotFoundIssue = &Issue{
		id: WorkspaceManifestNotFoundId,
		mdMsg: `
# No workspace manifest found

We looked for a ` + "`Cargo.toml`" + ` with a ` + "`[workspace]`" + ` table but
couldn't find one in the current directory.

## Things you can try
- Run xtask from the workspace root
- Check that the root manifest declares workspace members:
~~~toml
[workspace]
members = ["crates/*", "examples/*"]
~~~`,
	}

	registry = map[Id]*Issue{
		NightlyToolchainRequiredId:  nightlyToolchainRequiredIssue,
		WorkspaceManifestNotFoundId: workspaceManifestNotFoundIssue,
	}
)

// Lookup returns the registered issue for the given id, or nil when unknown.
func Lookup(id Id) *Issue {
	return registry[id]
}
