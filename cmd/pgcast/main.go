// Command pgcast casts PostgreSQL text values to Go values, adapts Go values to parameters and formats queries. It
// works offline or against a live server given with --database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
