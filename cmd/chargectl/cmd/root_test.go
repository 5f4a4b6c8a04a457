package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/cmd/chargectl/cmd"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

const graduatedYAML = `charge_model: graduated
properties:
  graduated_ranges:
    - from_value: 0
      to_value: 10
      per_unit_amount: "2"
      flat_amount: "0"
    - from_value: 11
      per_unit_amount: "3"
      flat_amount: "3"
`

func TestValidate(t *testing.T) {
	t.Run("should accept a valid YAML file", func(t *testing.T) {
		path := writeFile(t, "graduated.yaml", graduatedYAML)

		out, err := run(t, "", "validate", "-f", path)
		require.NoError(t, err)
		require.Contains(t, out, `"valid": true`)
	})

	t.Run("should list findings and fail", func(t *testing.T) {
		path := writeFile(t, "package.json", `{"charge_model":"package","properties":{"package_size":0}}`)

		out, err := run(t, "", "validate", "-f", path)
		require.ErrorIs(t, err, cmd.ErrInvalidConfig)
		require.Contains(t, out, `"error_code": "invalid_package_size"`)
		require.Contains(t, out, `"error_code": "invalid_amount_cents"`)
	})

	t.Run("should read stdin", func(t *testing.T) {
		out, err := run(t, `{"charge_model":"standard","properties":{"amount":"1.5"}}`, "validate", "-f", "-")
		require.NoError(t, err)
		require.Contains(t, out, `"valid": true`)
	})

	t.Run("should reject unknown models", func(t *testing.T) {
		path := writeFile(t, "flat.json", `{"charge_model":"flat"}`)

		_, err := run(t, "", "validate", "-f", path)
		require.Error(t, err)
		require.NotErrorIs(t, err, cmd.ErrInvalidConfig)
	})
}

func TestCompute(t *testing.T) {
	graduated := writeFile(t, "graduated.yml", graduatedYAML)

	tests := []struct {
		name     string
		args     []string
		contains string
		wantErr  error
	}{
		{
			name:     "graduated usage",
			args:     []string{"compute", "-f", graduated, "--value", "15"},
			contains: `"amount_cents": 3800`,
		},
		{
			name: "percentage with events",
			args: []string{
				"compute", "-f",
				writeFile(t, "pct.json", `{"charge_model":"percentage","properties":{"rate":"0.25","fixed_amount":"1","free_units_per_events":2}}`),
				"--value", "150", "--events", "8",
			},
			contains: `"amount_cents": 4350`,
		},
		{
			name: "standard with unit rate",
			args: []string{
				"compute", "-f", writeFile(t, "std.json", `{"charge_model":"standard"}`),
				"--value", "3", "--unit-rate", "0.333",
			},
			contains: `"amount": "0.999"`,
		},
		{
			name: "invalid configuration",
			args: []string{
				"compute", "-f", writeFile(t, "vol.json", `{"charge_model":"volume","properties":{}}`),
				"--value", "1",
			},
			contains: `"error_code": "missing_graduated_range"`,
			wantErr:  cmd.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Contains(t, out, tt.contains)
		})
	}

	t.Run("should reject malformed values", func(t *testing.T) {
		_, err := run(t, "", "compute", "-f", graduated, "--value", "abc")
		require.ErrorContains(t, err, "--value")
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := run(t, "", "compute", "-f", graduated)
		require.Error(t, err)
	})
}
