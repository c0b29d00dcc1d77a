// SPDX-License-Identifier: MPL-2.0

package main

import cmd "xtask-cli/cmd/xtask"

func main() {
	cmd.Execute()
}
