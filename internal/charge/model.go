// Package charge validates charge pricing configurations and computes the
// amount owed for a usage value under each pricing model.
//
// Everything in this package is a pure function of its inputs. A Config is an
// immutable value produced by Validate, so one parsed configuration may be
// computed against from any number of goroutines.
package charge

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Model identifies a pricing model.
type Model string

// Supported pricing models.
const (
	ModelStandard   Model = "standard"
	ModelPackage    Model = "package"
	ModelGraduated  Model = "graduated"
	ModelPercentage Model = "percentage"
	ModelVolume     Model = "volume"
)

// Models lists every supported model in a stable order.
func Models() []Model {
	return []Model{ModelStandard, ModelPackage, ModelGraduated, ModelPercentage, ModelVolume}
}

// ParseModel resolves a model tag. Unknown tags are an error.
func ParseModel(tag string) (Model, error) {
	m := Model(strings.ToLower(strings.TrimSpace(tag)))
	switch m {
	case ModelStandard, ModelPackage, ModelGraduated, ModelPercentage, ModelVolume:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, tag)
	}
}

func (m Model) String() string { return string(m) }

// Properties is the flat, model-specific parameter mapping of a charge.
type Properties map[string]any

func (p Properties) lookup(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Usage carries the aggregated usage for a billing period plus the
// model-specific auxiliary inputs supplied by the aggregation layer.
type Usage struct {
	// Value is the aggregated usage quantity. Must not be negative.
	Value decimal.Decimal
	// EventCount is the number of billable events (percentage model).
	EventCount int64
	// UnitRate overrides the configured unit amount (standard model).
	UnitRate *decimal.Decimal
}

// Result is the billed amount for one charge.
type Result struct {
	Model       Model           `json:"charge_model"`
	AmountCents int64           `json:"amount_cents"`
	Amount      decimal.Decimal `json:"amount"`
	Units       decimal.Decimal `json:"units"`
	Tiers       []TierResult    `json:"tiers,omitempty"`
}

// TierResult is the contribution of a single tier, for invoice display.
type TierResult struct {
	Index         int             `json:"index"`
	FromValue     int64           `json:"from_value"`
	ToValue       *int64          `json:"to_value"`
	Units         decimal.Decimal `json:"units"`
	PerUnitAmount decimal.Decimal `json:"per_unit_amount"`
	FlatAmount    decimal.Decimal `json:"flat_amount"`
	Amount        decimal.Decimal `json:"amount"`
	AmountCents   int64           `json:"amount_cents"`
}

// Config is a validated pricing configuration. The set of implementations is
// closed: only this package can produce one.
type Config interface {
	Model() Model
	isConfig()
}

// Validator checks raw properties and produces a parsed configuration.
type Validator interface {
	Validate(props Properties) (Config, ValidationErrors)
}

// Computer bills a usage value against an already validated configuration.
type Computer interface {
	Compute(usage Usage) (*Result, error)
}

const minorUnitExponent = 2

// toCents converts a major-unit amount into minor units, rounding half away
// from zero.
func toCents(amount decimal.Decimal) (int64, error) {
	return wholeCents(amount.Shift(minorUnitExponent))
}

// wholeCents rounds a minor-unit amount and checks it fits in int64.
func wholeCents(cents decimal.Decimal) (int64, error) {
	rounded := cents.Round(0).BigInt()
	if !rounded.IsInt64() {
		return 0, fmt.Errorf("%w: %s minor units", ErrAmountOverflow, cents.Round(0))
	}
	return rounded.Int64(), nil
}

// AddCents sums two non-negative minor-unit amounts.
func AddCents(a, b int64) (int64, error) {
	if b > math.MaxInt64-a {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -minorUnitExponent)
}
