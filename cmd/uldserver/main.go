// uldserver is the long-running HTTP service exposing the solve,
// request-lookup, and metrics endpoints, backed by the request
// cache/store.
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
	if err := cli.ExecuteServer(); err != nil {
		fmt.Fprintln(os.Stderr, "uldserver:", err)
		os.Exit(1)
	}
}
