// SPDX-License-Identifier: MPL-2.0

package main

import cmd "xapktool-cli/cmd/xapktool"

func main() {
	cmd.Execute()
}
