package validation

import (
	"github.com/shopspring/decimal"
)

// CheckFunc inspects a present field value and reports the violation kind
// when the value breaks the rule. ok is true when the value passes.
type CheckFunc func(v any) (kind Kind, ok bool)

// FieldRule binds one allow-listed field to its presence requirement and
// value check. Rule sets are plain data so each entity's validator is a
// table, not a hand-written branch per type.
type FieldRule struct {
	Name     string
	Required bool
	Check    CheckFunc
}

// RuleSet is the full rule table for one entity.
type RuleSet struct {
	Entity string
	Rules  []FieldRule
}

// Apply validates the merged candidate fields against the table. Fields
// absent from the map are only checked for required presence; every
// violated rule is reported, never just the first.
func (rs RuleSet) Apply(fields map[string]any) error {
	var errs Errors

	for _, rule := range rs.Rules {
		value, present := fields[rule.Name]
		if !present {
			if rule.Required {
				errs.add(rule.Name, KindMissing)
			}
			continue
		}

		if rule.Check == nil {
			continue
		}

		if kind, ok := rule.Check(value); !ok {
			errs.add(rule.Name, kind)
		}
	}

	return errs.orNil()
}

// Enum accepts only exact, case-sensitive membership in the allowed set.
func Enum(allowed ...string) CheckFunc {
	return func(v any) (Kind, bool) {
		s, isString := v.(string)
		if !isString {
			return KindNotInEnum, false
		}
		for _, a := range allowed {
			if s == a {
				return "", true
			}
		}
		return KindNotInEnum, false
	}
}

// Length enforces inclusive string length bounds.
func Length(min, max int) CheckFunc {
	return func(v any) (Kind, bool) {
		s, isString := v.(string)
		if !isString {
			return KindTooShort, false
		}
		if len(s) < min {
			return KindTooShort, false
		}
		if len(s) > max {
			return KindTooLong, false
		}
		return "", true
	}
}

// MaxLength enforces an inclusive upper string length bound.
func MaxLength(max int) CheckFunc {
	return Length(0, max)
}

// DecimalMin enforces a lower bound on a decimal value. The bound is
// exclusive when strict is true.
func DecimalMin(min decimal.Decimal, strict bool) CheckFunc {
	return func(v any) (Kind, bool) {
		d, isDecimal := v.(decimal.Decimal)
		if !isDecimal {
			return KindOutOfRange, false
		}
		if strict && !d.GreaterThan(min) {
			return KindOutOfRange, false
		}
		if !strict && d.LessThan(min) {
			return KindOutOfRange, false
		}
		return "", true
	}
}

// DecimalRange enforces min < v <= max when minStrict, min <= v <= max
// otherwise. Both ends use exact decimal comparison.
func DecimalRange(min, max decimal.Decimal, minStrict bool) CheckFunc {
	lower := DecimalMin(min, minStrict)
	return func(v any) (Kind, bool) {
		if kind, ok := lower(v); !ok {
			return kind, false
		}
		d := v.(decimal.Decimal)
		if d.GreaterThan(max) {
			return KindOutOfRange, false
		}
		return "", true
	}
}

// IntMin enforces an inclusive lower bound on an integer field.
func IntMin(min int) CheckFunc {
	return func(v any) (Kind, bool) {
		n, isInt := v.(int)
		if !isInt {
			return KindOutOfRange, false
		}
		if n < min {
			return KindOutOfRange, false
		}
		return "", true
	}
}
