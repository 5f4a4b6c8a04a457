// Package cmd provides the chargectl commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/observability"
)

// ErrInvalidConfig is returned when a charge file fails validation. Its
// findings have already been written to stdout.
var ErrInvalidConfig = errors.New("charge configuration is invalid")

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "chargectl",
		Short: "Validate charge configurations and price usage against them",
		Long: `chargectl checks usage-based charge configurations and computes what a
usage value costs under them, without running the billing server.

Charge files are JSON or YAML documents with a charge_model and properties.

Examples:
  chargectl validate -f package.yaml
  chargectl compute -f graduated.json --value 15
  chargectl compute -f percentage.yaml --value 150 --events 8`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg := &config.LogConfig{Level: "warn"}
			if verbose {
				cfg = &config.LogConfig{Level: "debug", Development: true}
			}
			_, err := observability.InitLogger(cfg)
			return err
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newComputeCmd())

	return root
}

// Execute runs the CLI.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil && !errors.Is(err, ErrInvalidConfig) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
