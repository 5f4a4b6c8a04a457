package charge

import (
	"github.com/shopspring/decimal"

	"github.com/davidbz/chargeflow/internal/decimalamount"
)

// Tier is a contiguous usage range with its own flat fee and per-unit rate.
// ToValue is nil for the open-ended last tier.
type Tier struct {
	FromValue     int64
	ToValue       *int64
	PerUnitAmount decimal.Decimal
	FlatAmount    decimal.Decimal
}

func (t Tier) contains(value decimal.Decimal) bool {
	return t.ToValue == nil || value.LessThanOrEqual(decimal.NewFromInt(*t.ToValue))
}

// validateTiers checks the tier collection stored under key. Amount checks
// and bound checks run for every tier so one pass reports every defect.
func validateTiers(props Properties, key string) ([]Tier, ValidationErrors) {
	var errs ValidationErrors

	ranges, ok := rangeList(props, key)
	if !ok || len(ranges) == 0 {
		errs.add(FieldRanges, CodeMissingGraduatedRange)
		return nil, errs
	}

	tiers := make([]Tier, 0, len(ranges))
	var nextFromValue int64

	for i, raw := range ranges {
		tier, amountsOK := parseTierAmounts(raw, &errs)

		from, to, boundsParsed := parseTierBounds(raw)
		tier.FromValue = from
		tier.ToValue = to

		if !boundsParsed || !validBounds(from, to, i == len(ranges)-1, nextFromValue) {
			errs.add(FieldRanges, CodeInvalidGraduatedRanges)
		}

		if to != nil {
			nextFromValue = *to + 1
		} else {
			nextFromValue = 0
		}

		if amountsOK && boundsParsed {
			tiers = append(tiers, tier)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return tiers, nil
}

func validBounds(from int64, to *int64, last bool, nextFromValue int64) bool {
	if from != nextFromValue {
		return false
	}
	if last {
		return to == nil
	}
	return to != nil && *to > from
}

func rangeList(props Properties, key string) ([]map[string]any, bool) {
	raw, ok := props.lookup(key)
	if !ok {
		return nil, false
	}

	switch list := raw.(type) {
	case []map[string]any:
		return list, true
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			m, isMap := toStringMap(item)
			if !isMap {
				// A malformed entry still counts as a tier so bound
				// checks on the following tiers stay meaningful.
				m = map[string]any{}
			}
			out = append(out, m)
		}
		return out, true
	default:
		return nil, false
	}
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Properties:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func parseTierAmounts(raw map[string]any, errs *ValidationErrors) (Tier, bool) {
	var tier Tier
	ok := true

	perUnit, valid := nonNegative(raw[FieldPerUnitAmount])
	if !valid {
		errs.add(FieldPerUnitAmount, CodeInvalidAmount)
		ok = false
	}
	tier.PerUnitAmount = perUnit

	flat, valid := nonNegative(raw[FieldFlatAmount])
	if !valid {
		errs.add(FieldFlatAmount, CodeInvalidAmount)
		ok = false
	}
	tier.FlatAmount = flat

	return tier, ok
}

func parseTierBounds(raw map[string]any) (int64, *int64, bool) {
	from, ok := decimalamount.ParseInteger(raw[PropertyFromValue])
	if !ok || from < 0 {
		return 0, nil, false
	}

	rawTo, present := raw[PropertyToValue]
	if !present || rawTo == nil {
		return from, nil, true
	}

	to, ok := decimalamount.ParseInteger(rawTo)
	if !ok {
		return from, nil, false
	}
	return from, &to, true
}

func nonNegative(v any) (decimal.Decimal, bool) {
	d, ok := decimalamount.Parse(v)
	if !ok || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
