package charge

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/davidbz/chargeflow/internal/decimalamount"
)

// StandardConfig bills every unit at a single rate.
type StandardConfig struct {
	amount *decimal.Decimal
}

// Model implements Config.
func (StandardConfig) Model() Model { return ModelStandard }

func (StandardConfig) isConfig() {}

// Amount returns the configured default unit rate, if any.
func (c StandardConfig) Amount() (decimal.Decimal, bool) {
	if c.amount == nil {
		return decimal.Zero, false
	}
	return *c.amount, true
}

// StandardValidator validates standard charge properties.
type StandardValidator struct{}

// Validate implements Validator.
func (StandardValidator) Validate(props Properties) (Config, ValidationErrors) {
	var errs ValidationErrors
	var cfg StandardConfig

	if raw, ok := props.lookup(FieldAmount); ok {
		amount, valid := nonNegative(raw)
		if !valid {
			errs.add(FieldAmount, CodeInvalidAmount)
		} else {
			cfg.amount = &amount
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// Compute implements Computer. The unit rate supplied with the usage takes
// precedence over the configured amount.
func (c StandardConfig) Compute(usage Usage) (*Result, error) {
	if err := checkUsage(usage); err != nil {
		return nil, err
	}

	var rate decimal.Decimal
	switch {
	case usage.UnitRate != nil:
		if usage.UnitRate.IsNegative() {
			return nil, ErrNegativeUnitRate
		}
		rate = *usage.UnitRate
	case c.amount != nil:
		rate = *c.amount
	default:
		return nil, ErrMissingUnitRate
	}

	amount := rate.Mul(usage.Value)
	cents, err := toCents(amount)
	if err != nil {
		return nil, err
	}
	return &Result{
		Model:       ModelStandard,
		AmountCents: cents,
		Amount:      amount,
		Units:       usage.Value,
	}, nil
}

func checkUsage(usage Usage) error {
	if usage.Value.IsNegative() {
		return ErrNegativeUsage
	}
	if usage.EventCount < 0 {
		return ErrNegativeEventCount
	}
	if !decimalamount.InRange(usage.Value) {
		return ErrUsageOutOfRange
	}
	if usage.UnitRate != nil && !decimalamount.InRange(*usage.UnitRate) {
		return fmt.Errorf("%w: unit rate", ErrUsageOutOfRange)
	}
	return nil
}
