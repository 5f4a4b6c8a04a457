package charge

import (
	"github.com/shopspring/decimal"

	"github.com/davidbz/chargeflow/internal/decimalamount"
)

// PackageConfig bills usage in whole packages of PackageSize units.
type PackageConfig struct {
	amountCents int64
	packageSize int64
	freeUnits   int64
}

// Model implements Config.
func (PackageConfig) Model() Model { return ModelPackage }

func (PackageConfig) isConfig() {}

// AmountCents is the price of one package in minor units.
func (c PackageConfig) AmountCents() int64 { return c.amountCents }

// PackageSize is the number of units in one package.
func (c PackageConfig) PackageSize() int64 { return c.packageSize }

// FreeUnits is the number of units exempted before packaging.
func (c PackageConfig) FreeUnits() int64 { return c.freeUnits }

// PackageValidator validates package charge properties.
type PackageValidator struct{}

// Validate implements Validator.
func (PackageValidator) Validate(props Properties) (Config, ValidationErrors) {
	var errs ValidationErrors
	var cfg PackageConfig

	size, ok := integerProperty(props, FieldPackageSize)
	if !ok || size <= 0 {
		errs.add(FieldPackageSize, CodeInvalidPackageSize)
	}
	cfg.packageSize = size

	amount, ok := integerProperty(props, FieldAmountCents)
	if !ok || amount < 0 {
		errs.add(FieldAmountCents, CodeInvalidAmountCents)
	}
	cfg.amountCents = amount

	if _, present := props.lookup(FieldFreeUnits); present {
		free, valid := integerProperty(props, FieldFreeUnits)
		if !valid || free < 0 {
			errs.add(FieldFreeUnits, CodeInvalidFreeUnits)
		}
		cfg.freeUnits = free
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// Compute implements Computer. A partially used package is billed in full;
// usage fully covered by free units bills nothing.
func (c PackageConfig) Compute(usage Usage) (*Result, error) {
	if err := checkUsage(usage); err != nil {
		return nil, err
	}
	if c.packageSize <= 0 {
		return nil, ErrInvalidConfig
	}

	billed := usage.Value.Sub(decimal.NewFromInt(c.freeUnits))
	if billed.IsNegative() {
		billed = decimal.Zero
	}

	packages, remainder := billed.QuoRem(decimal.NewFromInt(c.packageSize), 0)
	if remainder.IsPositive() {
		packages = packages.Add(decimal.NewFromInt(1))
	}

	cents, err := wholeCents(packages.Mul(decimal.NewFromInt(c.amountCents)))
	if err != nil {
		return nil, err
	}
	return &Result{
		Model:       ModelPackage,
		AmountCents: cents,
		Amount:      fromCents(cents),
		Units:       billed,
	}, nil
}

func integerProperty(props Properties, key string) (int64, bool) {
	raw, ok := props.lookup(key)
	if !ok {
		return 0, false
	}
	return decimalamount.ParseInteger(raw)
}
