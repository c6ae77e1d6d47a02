// SPDX-License-Identifier: MIT
// bassgraph is the loudspeaker enclosure parameter calculator.
package main

import (
	"os"

	"github.com/katalvlaran/bassgraph/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
