package charge

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VolumeConfig prices the whole usage at the single tier containing it.
type VolumeConfig struct {
	tiers []Tier
}

// Model implements Config.
func (VolumeConfig) Model() Model { return ModelVolume }

func (VolumeConfig) isConfig() {}

// Tiers returns a copy of the configured tiers.
func (c VolumeConfig) Tiers() []Tier { return copyTiers(c.tiers) }

// VolumeValidator validates the volume_ranges property. Volume tiers share
// the graduated tier shape and error codes.
type VolumeValidator struct{}

// Validate implements Validator.
func (VolumeValidator) Validate(props Properties) (Config, ValidationErrors) {
	tiers, errs := validateTiers(props, PropertyVolumeRanges)
	if len(errs) > 0 {
		return nil, errs
	}
	return VolumeConfig{tiers: tiers}, nil
}

// Compute implements Computer.
func (c VolumeConfig) Compute(usage Usage) (*Result, error) {
	if err := checkUsage(usage); err != nil {
		return nil, err
	}

	value := usage.Value
	result := &Result{
		Model:  ModelVolume,
		Amount: decimal.Zero,
		Units:  value,
	}
	if value.IsZero() && len(c.tiers) > 0 {
		return result, nil
	}

	for i, tier := range c.tiers {
		if !tier.contains(value) {
			continue
		}

		amount := tier.FlatAmount.Add(tier.PerUnitAmount.Mul(value))
		cents, err := toCents(amount)
		if err != nil {
			return nil, err
		}

		result.Tiers = []TierResult{tierResult(i, tier, value, amount, cents)}
		result.Amount = amount
		result.AmountCents = cents
		return result, nil
	}

	return nil, fmt.Errorf("%w: usage %s", ErrNoMatchingTier, value)
}
