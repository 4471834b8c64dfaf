// SPDX-License-Identifier: MPL-2.0

package main

import cmd "cmdtrie-cli/cmd/cmdtrie"

func main() {
	cmd.Execute()
}
