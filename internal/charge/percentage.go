package charge

import (
	"github.com/shopspring/decimal"

	"github.com/davidbz/chargeflow/internal/decimalamount"
)

// PercentageConfig applies a rate to the aggregated value plus a fixed amount
// per billable event.
type PercentageConfig struct {
	rate                         decimal.Decimal
	fixedAmount                  decimal.Decimal
	freeUnitsPerEvents           int64
	freeUnitsPerTotalAggregation decimal.Decimal
}

// Model implements Config.
func (PercentageConfig) Model() Model { return ModelPercentage }

func (PercentageConfig) isConfig() {}

// Rate is the multiplier applied to the aggregated value.
func (c PercentageConfig) Rate() decimal.Decimal { return c.rate }

// FixedAmount is charged once per billable event beyond the free events.
func (c PercentageConfig) FixedAmount() decimal.Decimal { return c.fixedAmount }

// FreeUnitsPerEvents is the number of events exempted from the fixed amount.
func (c PercentageConfig) FreeUnitsPerEvents() int64 { return c.freeUnitsPerEvents }

// FreeUnitsPerTotalAggregation is deducted from the value before the rate.
func (c PercentageConfig) FreeUnitsPerTotalAggregation() decimal.Decimal {
	return c.freeUnitsPerTotalAggregation
}

// PercentageValidator validates percentage charge properties.
type PercentageValidator struct{}

// Validate implements Validator.
func (PercentageValidator) Validate(props Properties) (Config, ValidationErrors) {
	var errs ValidationErrors
	cfg := PercentageConfig{
		fixedAmount:                  decimal.Zero,
		freeUnitsPerTotalAggregation: decimal.Zero,
	}

	rawRate, _ := props.lookup(FieldRate)
	rate, ok := decimalamount.Parse(rawRate)
	if !ok || !rate.IsPositive() {
		errs.add(FieldRate, CodeInvalidRate)
	}
	cfg.rate = rate

	if raw, present := props.lookup(FieldFixedAmount); present {
		fixed, valid := nonNegative(raw)
		if !valid {
			errs.add(FieldFixedAmount, CodeInvalidFixedAmount)
		}
		cfg.fixedAmount = fixed
	}

	if raw, present := props.lookup(FieldFreeUnitsPerEvents); present {
		free, valid := decimalamount.ParseInteger(raw)
		if !valid || free <= 0 {
			errs.add(FieldFreeUnitsPerEvents, CodeInvalidFreeUnitsPerEvents)
		}
		cfg.freeUnitsPerEvents = free
	}

	if raw, present := props.lookup(FieldFreeUnitsPerTotalAggregation); present {
		free, valid := nonNegative(raw)
		if !valid {
			errs.add(FieldFreeUnitsPerTotalAggregation, CodeInvalidFreeUnitsPerTotalAggregation)
		}
		cfg.freeUnitsPerTotalAggregation = free
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// Compute implements Computer. The event count is an explicit input from the
// aggregation layer; it only drives how often the fixed amount applies.
func (c PercentageConfig) Compute(usage Usage) (*Result, error) {
	if err := checkUsage(usage); err != nil {
		return nil, err
	}
	if !c.rate.IsPositive() {
		return nil, ErrInvalidConfig
	}

	base := usage.Value.Sub(c.freeUnitsPerTotalAggregation)
	if base.IsNegative() {
		base = decimal.Zero
	}

	events := usage.EventCount - c.freeUnitsPerEvents
	if events < 0 {
		events = 0
	}

	amount := c.rate.Mul(base).Add(c.fixedAmount.Mul(decimal.NewFromInt(events)))
	cents, err := toCents(amount)
	if err != nil {
		return nil, err
	}
	return &Result{
		Model:       ModelPercentage,
		AmountCents: cents,
		Amount:      amount,
		Units:       base,
	}, nil
}
