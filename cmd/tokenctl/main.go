// tokenctl issues, validates, refreshes, revokes, and inspects tokens from the
// command line, and generates RSA key pairs for the RS* algorithms.
//
// Settings come from, in order: command flags, TOKENAUTH_* environment
// variables, and the YAML file named by --config. Revocations only persist
// across invocations when --redis-addr is set.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
