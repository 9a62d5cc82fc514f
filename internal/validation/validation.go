package validation

import (
	"math"
	"strings"
)

// Violations maps a field name to a short violation code suitable for a
// structured 400 response.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// PositiveInt validates a JSON number that must be a strictly positive
// integer. Fractional values are rejected rather than truncated, and values
// too large to survive a conversion to int are rejected rather than allowed
// to overflow.
func PositiveInt(field string, val float64, v Violations) {
	if val != math.Trunc(val) {
		v[field] = "must_be_integer"
		return
	}
	if val <= 0 {
		v[field] = "must_be_positive"
		return
	}
	if val > math.MaxInt32 {
		v[field] = "out_of_range"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_be_non_negative"
	}
}

func MinItems(field string, n, minimum int, v Violations) {
	if n < minimum {
		v[field] = "too_few_items"
	}
}
