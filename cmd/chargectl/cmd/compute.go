package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/davidbz/chargeflow/internal/charge"
)

func newComputeCmd() *cobra.Command {
	var (
		file     string
		value    string
		events   int64
		unitRate string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the amount owed for a usage value",
		Long: `Compute validates a charge configuration and prices one billing period
of usage against it. Amounts are printed in major units and in cents.

Examples:
  chargectl compute -f graduated.yaml --value 15
  chargectl compute -f standard.json --value 3 --unit-rate 0.333`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, props, err := readChargeFile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			usage, err := parseUsage(value, events, unitRate)
			if err != nil {
				return err
			}

			result, errs, err := charge.ValidateAndCompute(model, props, usage)
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				if err := writeJSON(cmd.OutOrStdout(), validationOutput{Valid: false, Errors: errs}); err != nil {
					return err
				}
				return ErrInvalidConfig
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "charge file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&value, "value", "", "aggregated usage value")
	cmd.Flags().Int64Var(&events, "events", 0, "number of billable events (percentage model)")
	cmd.Flags().StringVar(&unitRate, "unit-rate", "", "unit rate overriding the configured amount (standard model)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func parseUsage(value string, events int64, unitRate string) (charge.Usage, error) {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return charge.Usage{}, fmt.Errorf("invalid --value %q: %w", value, err)
	}

	usage := charge.Usage{Value: v, EventCount: events}
	if unitRate != "" {
		rate, err := decimal.NewFromString(unitRate)
		if err != nil {
			return charge.Usage{}, fmt.Errorf("invalid --unit-rate %q: %w", unitRate, err)
		}
		usage.UnitRate = &rate
	}

	return usage, nil
}
