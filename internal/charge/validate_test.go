package charge_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/internal/charge"
)

func tier(from int64, to any, perUnit, flat any) map[string]any {
	return map[string]any{
		"from_value":      from,
		"to_value":        to,
		"per_unit_amount": perUnit,
		"flat_amount":     flat,
	}
}

func TestPackageValidator(t *testing.T) {
	tests := []struct {
		name  string
		props charge.Properties
		codes []string
	}{
		{
			name:  "valid with free units",
			props: charge.Properties{"amount_cents": 300, "package_size": 10, "free_units": 10},
		},
		{
			name:  "valid without free units",
			props: charge.Properties{"amount_cents": 0, "package_size": 1},
		},
		{
			name:  "zero package size",
			props: charge.Properties{"amount_cents": 300, "package_size": 0},
			codes: []string{charge.CodeInvalidPackageSize},
		},
		{
			name:  "missing everything",
			props: charge.Properties{},
			codes: []string{charge.CodeInvalidPackageSize, charge.CodeInvalidAmountCents},
		},
		{
			name:  "negative amount and free units",
			props: charge.Properties{"amount_cents": -1, "package_size": 5, "free_units": -2},
			codes: []string{charge.CodeInvalidAmountCents, charge.CodeInvalidFreeUnits},
		},
		{
			name:  "fractional package size",
			props: charge.Properties{"amount_cents": 100, "package_size": 2.5},
			codes: []string{charge.CodeInvalidPackageSize},
		},
		{
			name:  "string integers are rejected",
			props: charge.Properties{"amount_cents": "100", "package_size": "10"},
			codes: []string{charge.CodeInvalidPackageSize, charge.CodeInvalidAmountCents},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, errs, err := charge.Validate(charge.ModelPackage, tt.props)
			require.NoError(t, err)

			if len(tt.codes) == 0 {
				require.Empty(t, errs)
				require.NotNil(t, cfg)
				require.Equal(t, charge.ModelPackage, cfg.Model())
				return
			}

			require.Nil(t, cfg)
			require.ElementsMatch(t, tt.codes, errs.Codes())
		})
	}
}

func TestPercentageValidator(t *testing.T) {
	tests := []struct {
		name   string
		props  charge.Properties
		errors charge.ValidationErrors
	}{
		{
			name: "all fields valid",
			props: charge.Properties{
				"rate":                             "0.25",
				"fixed_amount":                     "2",
				"free_units_per_events":            5,
				"free_units_per_total_aggregation": "50",
			},
		},
		{
			name:  "only rate",
			props: charge.Properties{"rate": "1"},
		},
		{
			name:   "missing rate",
			props:  charge.Properties{},
			errors: charge.ValidationErrors{{Field: "rate", Code: "invalid_rate"}},
		},
		{
			name:   "zero rate",
			props:  charge.Properties{"rate": "0"},
			errors: charge.ValidationErrors{{Field: "rate", Code: "invalid_rate"}},
		},
		{
			name:   "rate with an unbounded exponent",
			props:  charge.Properties{"rate": "1e3000000"},
			errors: charge.ValidationErrors{{Field: "rate", Code: "invalid_rate"}},
		},
		{
			name:  "independent defects are all reported",
			props: charge.Properties{"rate": "abc", "fixed_amount": "-2"},
			errors: charge.ValidationErrors{
				{Field: "rate", Code: "invalid_rate"},
				{Field: "fixed_amount", Code: "invalid_fixed_amount"},
			},
		},
		{
			name: "every optional field invalid",
			props: charge.Properties{
				"rate":                             "0.5",
				"fixed_amount":                     "x",
				"free_units_per_events":            0,
				"free_units_per_total_aggregation": "-1",
			},
			errors: charge.ValidationErrors{
				{Field: "fixed_amount", Code: "invalid_fixed_amount"},
				{Field: "free_units_per_events", Code: "invalid_free_units_per_events"},
				{Field: "free_units_per_total_aggregation", Code: "invalid_free_units_per_total_aggregation"},
			},
		},
		{
			name:   "free units per events must be an integer",
			props:  charge.Properties{"rate": "0.5", "free_units_per_events": "5"},
			errors: charge.ValidationErrors{{Field: "free_units_per_events", Code: "invalid_free_units_per_events"}},
		},
		{
			name:  "explicit null optional fields are skipped",
			props: charge.Properties{"rate": "0.5", "fixed_amount": nil, "free_units_per_events": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, errs, err := charge.Validate(charge.ModelPercentage, tt.props)
			require.NoError(t, err)
			require.Equal(t, tt.errors, errs)
			if len(tt.errors) == 0 {
				require.NotNil(t, cfg)
			}
		})
	}
}

func TestStandardValidator(t *testing.T) {
	_, errs, err := charge.Validate(charge.ModelStandard, nil)
	require.NoError(t, err)
	require.Empty(t, errs)

	_, errs, err = charge.Validate(charge.ModelStandard, charge.Properties{"amount": "100.00"})
	require.NoError(t, err)
	require.Empty(t, errs)

	_, errs, err = charge.Validate(charge.ModelStandard, charge.Properties{"amount": "-1"})
	require.NoError(t, err)
	require.True(t, errs.Has("amount", "invalid_amount"))
}

func TestTierValidators(t *testing.T) {
	tests := []struct {
		name   string
		ranges any
		errors charge.ValidationErrors
	}{
		{
			name: "contiguous tiers",
			ranges: []any{
				tier(0, 10, "2.00", "0"),
				tier(11, nil, "3.00", "3.00"),
			},
		},
		{
			name:   "single open-ended tier",
			ranges: []any{tier(0, nil, "1", "0")},
		},
		{
			name:   "missing ranges",
			ranges: nil,
			errors: charge.ValidationErrors{{Field: "ranges", Code: "missing_graduated_range"}},
		},
		{
			name:   "empty ranges",
			ranges: []any{},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "missing_graduated_range"}},
		},
		{
			name:   "ranges not a list",
			ranges: "0-10",
			errors: charge.ValidationErrors{{Field: "ranges", Code: "missing_graduated_range"}},
		},
		{
			name: "first tier not starting at zero",
			ranges: []any{
				tier(1, 10, "2", "0"),
				tier(11, nil, "3", "0"),
			},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "invalid_graduated_ranges"}},
		},
		{
			name: "gap between tiers",
			ranges: []any{
				tier(0, 10, "2", "0"),
				tier(12, nil, "3", "0"),
			},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "invalid_graduated_ranges"}},
		},
		{
			name: "overlapping tiers",
			ranges: []any{
				tier(0, 10, "2", "0"),
				tier(10, nil, "3", "0"),
			},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "invalid_graduated_ranges"}},
		},
		{
			name: "non-final tier without upper bound",
			ranges: []any{
				tier(0, nil, "2", "0"),
				tier(0, nil, "3", "0"),
			},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "invalid_graduated_ranges"}},
		},
		{
			name: "final tier with upper bound",
			ranges: []any{
				tier(0, 10, "2", "0"),
				tier(11, 20, "3", "0"),
			},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "invalid_graduated_ranges"}},
		},
		{
			name: "upper bound not above lower bound",
			ranges: []any{
				tier(0, 0, "2", "0"),
				tier(1, nil, "3", "0"),
			},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "invalid_graduated_ranges"}},
		},
		{
			name: "amount and bound defects are collected together",
			ranges: []any{
				tier(0, 10, "abc", "-1"),
				tier(12, nil, "3", "0"),
			},
			errors: charge.ValidationErrors{
				{Field: "per_unit_amount", Code: "invalid_amount"},
				{Field: "flat_amount", Code: "invalid_amount"},
				{Field: "ranges", Code: "invalid_graduated_ranges"},
			},
		},
		{
			name: "missing amounts",
			ranges: []any{
				map[string]any{"from_value": 0, "to_value": nil},
			},
			errors: charge.ValidationErrors{
				{Field: "per_unit_amount", Code: "invalid_amount"},
				{Field: "flat_amount", Code: "invalid_amount"},
			},
		},
		{
			name: "non-integer bound",
			ranges: []any{
				tier(0, "ten", "2", "0"),
				tier(11, nil, "3", "0"),
			},
			errors: charge.ValidationErrors{{Field: "ranges", Code: "invalid_graduated_ranges"}},
		},
		{
			name:   "entry that is not an object",
			ranges: []any{"tier"},
			errors: charge.ValidationErrors{
				{Field: "per_unit_amount", Code: "invalid_amount"},
				{Field: "flat_amount", Code: "invalid_amount"},
				{Field: "ranges", Code: "invalid_graduated_ranges"},
			},
		},
	}

	models := map[charge.Model]string{
		charge.ModelGraduated: "graduated_ranges",
		charge.ModelVolume:    "volume_ranges",
	}

	for model, key := range models {
		for _, tt := range tests {
			t.Run(string(model)+"/"+tt.name, func(t *testing.T) {
				props := charge.Properties{}
				if tt.ranges != nil {
					props[key] = tt.ranges
				}

				cfg, errs, err := charge.Validate(model, props)
				require.NoError(t, err)
				require.Equal(t, tt.errors, errs)
				if len(tt.errors) == 0 {
					require.NotNil(t, cfg)
					require.Equal(t, model, cfg.Model())
				}
			})
		}
	}
}

func TestValidate_DecodedJSON(t *testing.T) {
	body := `{
		"graduated_ranges": [
			{"from_value": 0, "to_value": 10, "per_unit_amount": "2.00", "flat_amount": "0"},
			{"from_value": 11, "to_value": null, "per_unit_amount": "3.00", "flat_amount": "3.00"}
		]
	}`

	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()

	var props charge.Properties
	require.NoError(t, decoder.Decode(&props))

	cfg, errs, err := charge.Validate(charge.ModelGraduated, props)
	require.NoError(t, err)
	require.Empty(t, errs)

	graduated, ok := cfg.(charge.GraduatedConfig)
	require.True(t, ok)

	tiers := graduated.Tiers()
	require.Len(t, tiers, 2)
	require.Equal(t, int64(11), tiers[1].FromValue)
	require.Nil(t, tiers[1].ToValue)
	require.Equal(t, "3", tiers[1].PerUnitAmount.String())
}

func TestValidate_UnknownModel(t *testing.T) {
	_, _, err := charge.Validate(charge.Model("tiered"), charge.Properties{})
	require.ErrorIs(t, err, charge.ErrUnknownModel)

	_, err = charge.ParseModel("dynamic")
	require.ErrorIs(t, err, charge.ErrUnknownModel)

	model, err := charge.ParseModel(" Volume ")
	require.NoError(t, err)
	require.Equal(t, charge.ModelVolume, model)
}

func TestValidatorFor_CoversEveryModel(t *testing.T) {
	for _, model := range charge.Models() {
		validator, err := charge.ValidatorFor(model)
		require.NoError(t, err, model)
		require.NotNil(t, validator)
	}
}
