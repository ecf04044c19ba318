// SPDX-License-Identifier: MIT

// Command temporalis runs dynamic life cycle assessments of YAML or SQLite
// inventories and prints the resulting emission timelines.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
