package charge

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownModel is returned when a model tag is not supported.
	ErrUnknownModel = errors.New("unknown charge model")

	// ErrInvalidConfig indicates computation was asked to run on a
	// configuration that breaks an invariant the validators enforce.
	ErrInvalidConfig = errors.New("invalid charge configuration")

	// ErrNoMatchingTier indicates no volume tier contains the usage value.
	ErrNoMatchingTier = errors.New("no tier matches usage value")

	// ErrNegativeUsage is returned for a usage value below zero.
	ErrNegativeUsage = errors.New("usage value must not be negative")

	// ErrNegativeEventCount is returned for an event count below zero.
	ErrNegativeEventCount = errors.New("event count must not be negative")

	// ErrMissingUnitRate is returned when a standard charge has neither a
	// configured amount nor a unit rate supplied with the usage.
	ErrMissingUnitRate = errors.New("unit rate is required")

	// ErrNegativeUnitRate is returned when the supplied unit rate is below zero.
	ErrNegativeUnitRate = errors.New("unit rate must not be negative")

	// ErrUsageOutOfRange is returned for a usage value or unit rate with more
	// precision or magnitude than decimalamount.InRange accepts.
	ErrUsageOutOfRange = errors.New("usage value out of range")

	// ErrAmountOverflow is returned when a billed amount does not fit in
	// int64 minor units.
	ErrAmountOverflow = errors.New("amount exceeds the representable range")
)

// Validation error codes.
const (
	CodeInvalidAmount                       = "invalid_amount"
	CodeInvalidAmountCents                  = "invalid_amount_cents"
	CodeInvalidPackageSize                  = "invalid_package_size"
	CodeInvalidFreeUnits                    = "invalid_free_units"
	CodeMissingGraduatedRange               = "missing_graduated_range"
	CodeInvalidGraduatedRanges              = "invalid_graduated_ranges"
	CodeInvalidRate                         = "invalid_rate"
	CodeInvalidFixedAmount                  = "invalid_fixed_amount"
	CodeInvalidFreeUnitsPerEvents           = "invalid_free_units_per_events"
	CodeInvalidFreeUnitsPerTotalAggregation = "invalid_free_units_per_total_aggregation"
)

// Property and error field names.
const (
	FieldAmount                       = "amount"
	FieldAmountCents                  = "amount_cents"
	FieldPackageSize                  = "package_size"
	FieldFreeUnits                    = "free_units"
	FieldRanges                       = "ranges"
	FieldPerUnitAmount                = "per_unit_amount"
	FieldFlatAmount                   = "flat_amount"
	FieldRate                         = "rate"
	FieldFixedAmount                  = "fixed_amount"
	FieldFreeUnitsPerEvents           = "free_units_per_events"
	FieldFreeUnitsPerTotalAggregation = "free_units_per_total_aggregation"

	PropertyGraduatedRanges = "graduated_ranges"
	PropertyVolumeRanges    = "volume_ranges"
	PropertyFromValue       = "from_value"
	PropertyToValue         = "to_value"
)

// ValidationError is a single finding about a charge configuration.
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"error_code"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Code
}

// ValidationErrors is an insertion-ordered set of findings.
type ValidationErrors []ValidationError

func (v *ValidationErrors) add(field, code string) {
	if v.Has(field, code) {
		return
	}
	*v = append(*v, ValidationError{Field: field, Code: code})
}

// Has reports whether the set contains the given finding.
func (v ValidationErrors) Has(field, code string) bool {
	for _, e := range v {
		if e.Field == field && e.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the error codes in order.
func (v ValidationErrors) Codes() []string {
	codes := make([]string, 0, len(v))
	for _, e := range v {
		codes = append(codes, e.Code)
	}
	return codes
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
