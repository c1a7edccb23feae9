package forms

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrossFieldRule relates two fields of the same ruleset. It is evaluated only
// when both fields parsed and passed their own rules; a failure is reported
// on Field.
type CrossFieldRule struct {
	Field string
	Other string
	Tag   string
	holds func(value, other any) bool
}

// After requires field to be strictly later than other.
func After(field, other string) CrossFieldRule {
	return CrossFieldRule{
		Field: field,
		Other: other,
		Tag:   "after",
		holds: func(value, otherValue any) bool {
			result, ok := compare(value, otherValue)
			return ok && result > 0
		},
	}
}

func compare(a, b any) (int, bool) {
	switch left := a.(type) {
	case int:
		right, ok := b.(int)
		if !ok {
			return 0, false
		}
		switch {
		case left < right:
			return -1, true
		case left > right:
			return 1, true
		}
		return 0, true
	case int64:
		right, ok := b.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case left < right:
			return -1, true
		case left > right:
			return 1, true
		}
		return 0, true
	case decimal.Decimal:
		right, ok := b.(decimal.Decimal)
		if !ok {
			return 0, false
		}
		return left.Cmp(right), true
	case time.Time:
		right, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return left.Compare(right), true
	}
	return 0, false
}
