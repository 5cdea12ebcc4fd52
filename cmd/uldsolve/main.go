// uldsolve is the batch CLI: it reads a package and ULD manifest,
// searches for a near-optimal 3D packing, and writes the solution file
// plus any requested PDF/XLSX/DXF/label exports.
package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/uldsolve/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cli.SetVersion(version, commit)
	if err := cli.ExecuteSolver(); err != nil {
		fmt.Fprintln(os.Stderr, "uldsolve:", err)
		os.Exit(1)
	}
}
