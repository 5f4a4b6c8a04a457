package charge

import (
	"fmt"
)

// ValidatorFor resolves the validator of a model.
func ValidatorFor(model Model) (Validator, error) {
	switch model {
	case ModelStandard:
		return StandardValidator{}, nil
	case ModelPackage:
		return PackageValidator{}, nil
	case ModelGraduated:
		return GraduatedValidator{}, nil
	case ModelPercentage:
		return PercentageValidator{}, nil
	case ModelVolume:
		return VolumeValidator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, string(model))
	}
}

// Validate checks props against the rules of model. A nil error with a
// non-empty ValidationErrors means the configuration was rejected; the
// returned Config is only set when there are no findings.
func Validate(model Model, props Properties) (Config, ValidationErrors, error) {
	validator, err := ValidatorFor(model)
	if err != nil {
		return nil, nil, err
	}

	cfg, errs := validator.Validate(props)
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return cfg, nil, nil
}

// Compute bills usage against a validated configuration.
func Compute(cfg Config, usage Usage) (*Result, error) {
	switch c := cfg.(type) {
	case StandardConfig:
		return c.Compute(usage)
	case PackageConfig:
		return c.Compute(usage)
	case GraduatedConfig:
		return c.Compute(usage)
	case PercentageConfig:
		return c.Compute(usage)
	case VolumeConfig:
		return c.Compute(usage)
	case nil:
		return nil, fmt.Errorf("%w: nil configuration", ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownModel, cfg)
	}
}

// ValidateAndCompute is the one-shot path used when a configuration is not
// stored: it validates props and, when they are acceptable, computes usage.
func ValidateAndCompute(model Model, props Properties, usage Usage) (*Result, ValidationErrors, error) {
	cfg, errs, err := Validate(model, props)
	if err != nil || len(errs) > 0 {
		return nil, errs, err
	}

	result, err := Compute(cfg, usage)
	if err != nil {
		return nil, nil, err
	}
	return result, nil, nil
}
