package charge

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GraduatedConfig prices each unit at the rate of the tier it falls into.
type GraduatedConfig struct {
	tiers []Tier
}

// Model implements Config.
func (GraduatedConfig) Model() Model { return ModelGraduated }

func (GraduatedConfig) isConfig() {}

// Tiers returns a copy of the configured tiers.
func (c GraduatedConfig) Tiers() []Tier { return copyTiers(c.tiers) }

// GraduatedValidator validates the graduated_ranges property.
type GraduatedValidator struct{}

// Validate implements Validator.
func (GraduatedValidator) Validate(props Properties) (Config, ValidationErrors) {
	tiers, errs := validateTiers(props, PropertyGraduatedRanges)
	if len(errs) > 0 {
		return nil, errs
	}
	return GraduatedConfig{tiers: tiers}, nil
}

// Compute implements Computer. The flat fee of a tier is billed once when the
// tier receives at least one unit; zero usage bills nothing.
func (c GraduatedConfig) Compute(usage Usage) (*Result, error) {
	if err := checkUsage(usage); err != nil {
		return nil, err
	}
	if len(c.tiers) == 0 {
		return nil, fmt.Errorf("%w: graduated charge has no tiers", ErrInvalidConfig)
	}

	value := usage.Value
	result := &Result{
		Model:  ModelGraduated,
		Amount: decimal.Zero,
		Units:  value,
	}
	if value.IsZero() {
		return result, nil
	}

	one := decimal.NewFromInt(1)
	allocated := false

	for i, tier := range c.tiers {
		upper := value
		if tier.ToValue != nil {
			upper = decimal.Min(value, decimal.NewFromInt(*tier.ToValue))
		}

		units := upper.Sub(decimal.NewFromInt(tier.FromValue))
		if i > 0 {
			units = units.Add(one)
		}

		if units.IsPositive() {
			amount := tier.FlatAmount.Add(tier.PerUnitAmount.Mul(units))
			cents, err := toCents(amount)
			if err != nil {
				return nil, err
			}
			if result.AmountCents, err = AddCents(result.AmountCents, cents); err != nil {
				return nil, err
			}

			result.Tiers = append(result.Tiers, tierResult(i, tier, units, amount, cents))
		}

		if tier.contains(value) {
			allocated = true
			break
		}
	}

	if !allocated {
		return nil, fmt.Errorf("%w: usage %s exceeds the last graduated tier", ErrInvalidConfig, value)
	}

	// Tiers round individually, so the total is the sum of rounded tiers.
	result.Amount = fromCents(result.AmountCents)
	return result, nil
}

func tierResult(index int, tier Tier, units, amount decimal.Decimal, cents int64) TierResult {
	return TierResult{
		Index:         index,
		FromValue:     tier.FromValue,
		ToValue:       tier.ToValue,
		Units:         units,
		PerUnitAmount: tier.PerUnitAmount,
		FlatAmount:    tier.FlatAmount,
		Amount:        amount,
		AmountCents:   cents,
	}
}

func copyTiers(tiers []Tier) []Tier {
	out := make([]Tier, len(tiers))
	for i, t := range tiers {
		out[i] = t
		if t.ToValue != nil {
			to := *t.ToValue
			out[i].ToValue = &to
		}
	}
	return out
}
