// Package decimalamount parses and checks the money-like and rate-like values
// found in charge properties.
//
// Values arrive from JSON (decoded with UseNumber), YAML or Go callers, so a
// single field may hold a string, a json.Number or a native number. Absent
// values (nil) are never coerced to zero: callers that treat a field as
// optional must skip validation themselves when the key is missing.
package decimalamount

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on accepted decimals. Exponent and coefficient size bound the cost of
// every later multiplication and rescale.
const (
	MaxExponent        = 32
	MaxScale           = 32
	MaxCoefficientBits = 128
)

// Parse converts v into an exact decimal. Values outside InRange are rejected.
func Parse(v any) (decimal.Decimal, bool) {
	d, ok := parse(v)
	if !ok || !InRange(d) {
		return decimal.Zero, false
	}
	return d, true
}

// InRange reports whether d has at most MaxScale fractional digits, an
// exponent of at most MaxExponent and a coefficient of at most
// MaxCoefficientBits bits.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxExponent || exp < -MaxScale {
		return false
	}
	return d.Coefficient().BitLen() <= MaxCoefficientBits
}

func parse(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return value, true
	case *decimal.Decimal:
		if value == nil {
			return decimal.Zero, false
		}
		return *value, true
	case string:
		return parseString(value)
	case json.Number:
		return parseString(value.String())
	case int:
		return decimal.NewFromInt(int64(value)), true
	case int32:
		return decimal.NewFromInt32(value), true
	case int64:
		return decimal.NewFromInt(value), true
	case uint:
		if uint64(value) > math.MaxInt64 {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(value)), true
	case uint64:
		if value > math.MaxInt64 {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(value)), true
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(value), true
	default:
		return decimal.Zero, false
	}
}

func parseString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ValidAmount reports whether v is a non-negative decimal.
func ValidAmount(v any) bool {
	d, ok := Parse(v)
	return ok && !d.IsNegative()
}

// ValidPositiveAmount reports whether v is a strictly positive decimal.
func ValidPositiveAmount(v any) bool {
	d, ok := Parse(v)
	return ok && d.IsPositive()
}

// ParseInteger converts v into an int64. Only integral numbers are accepted;
// strings are rejected even when they contain digits.
func ParseInteger(v any) (int64, bool) {
	switch value := v.(type) {
	case int:
		return int64(value), true
	case int32:
		return int64(value), true
	case int64:
		return value, true
	case uint:
		if uint64(value) > math.MaxInt64 {
			return 0, false
		}
		return int64(value), true
	case uint64:
		if value > math.MaxInt64 {
			return 0, false
		}
		return int64(value), true
	case float64:
		if value != math.Trunc(value) || math.Abs(value) >= math.MaxInt64 {
			return 0, false
		}
		return int64(value), true
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
