// Package main is the entry point for the chargewatchd daemon.
package main

import (
	"fmt"
	"os"

	"github.com/chargewatch/chargewatch/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "chargewatchd: %v\n", err)
		os.Exit(1)
	}
}
