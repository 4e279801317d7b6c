// Command mon parses, resolves, and type-validates MON documents from the
// command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mon: %v\n", err)
		os.Exit(1)
	}
}
