package validator

import (
	"fmt"
	"strings"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// RequiredSlice validates that a slice has at least one element.
func RequiredSlice[T any](field string, value []T) Rule {
	return Rule{
		Check: func() bool {
			return len(value) > 0
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// Min validates that value >= min.
func Min[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %v, got %v", min, value)},
	}
}

// Max validates that value <= max.
func Max[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %v, got %v", max, value)},
	}
}

// Positive validates that value > 0.
func Positive[T Numeric](field string, value T) Rule {
	var zero T
	return Rule{
		Check: func() bool {
			return value > zero
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be positive, got %v", value)},
	}
}

// Fraction validates that value is in (0, 1].
func Fraction(field string, value float64) Rule {
	return Rule{
		Check: func() bool {
			return value > 0 && value <= 1
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be in (0, 1], got %g", value)},
	}
}

// OneOf validates that value matches one of options, ignoring case and
// surrounding whitespace.
func OneOf(field, value string, options []string) Rule {
	return Rule{
		Check: func() bool {
			v := strings.TrimSpace(value)
			for _, o := range options {
				if strings.EqualFold(v, o) {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q is not one of: %s", value, strings.Join(options, ", ")),
		},
	}
}

// Check wraps a precomputed condition.
func Check(field string, ok bool, message string) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{Field: field, Message: message},
	}
}
