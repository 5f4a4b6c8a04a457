package cmd

import (
	"github.com/spf13/cobra"

	"github.com/davidbz/chargeflow/internal/charge"
)

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a charge configuration",
		Long: `Validate reports every problem with a charge configuration at once.

Exits non-zero when the configuration is invalid.

Examples:
  chargectl validate -f volume.yaml
  cat charge.json | chargectl validate -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, props, err := readChargeFile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			_, errs, err := charge.Validate(model, props)
			if err != nil {
				return err
			}

			if errs == nil {
				errs = charge.ValidationErrors{}
			}
			if err := writeJSON(cmd.OutOrStdout(), validationOutput{Valid: len(errs) == 0, Errors: errs}); err != nil {
				return err
			}
			if len(errs) > 0 {
				return ErrInvalidConfig
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "charge file (JSON or YAML, - for stdin)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
