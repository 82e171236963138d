// SPDX-License-Identifier: MPL-2.0

package main

import cmd "modpack-cli/cmd/modpack"

func main() {
	cmd.Execute()
}
