// Package main is the entry point for the chargectl CLI.
package main

import (
	"os"

	"github.com/davidbz/chargeflow/cmd/chargectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
