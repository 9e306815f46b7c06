package validator

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Required fails for the zero value of T.
func Required[T comparable](field string, value T) Rule {
	var zero T
	return Rule{
		Check: func() bool { return value != zero },
		Error: ValidationError{
			Field:   field,
			Message: "is required",
			Key:     "validation.required",
			Values:  map[string]any{"field": field},
		},
	}
}

// NotBlank fails for strings that are empty after trimming spaces.
func NotBlank(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:   field,
			Message: "is required",
			Key:     "validation.required",
			Values:  map[string]any{"field": field},
		},
	}
}

// MaxLen limits a string to max runes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters", max),
			Key:     "validation.max_length",
			Values:  map[string]any{"field": field, "max": max},
		},
	}
}

// Between requires min <= value <= max.
func Between[T Numeric](field string, value, min, max T) Rule {
	return Rule{
		Check: func() bool { return value >= min && value <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
			Key:     "validation.between",
			Values:  map[string]any{"field": field, "min": min, "max": max},
		},
	}
}

// Max requires value <= max.
func Max[T Numeric](field string, value, max T) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %v", max),
			Key:     "validation.max",
			Values:  map[string]any{"field": field, "max": max},
		},
	}
}

// Positive requires value > 0.
func Positive[T Numeric](field string, value T) Rule {
	var zero T
	return Rule{
		Check: func() bool { return value > zero },
		Error: ValidationError{
			Field:   field,
			Message: "must be greater than zero",
			Key:     "validation.positive",
			Values:  map[string]any{"field": field},
		},
	}
}

// NotAfter requires value to be at or before limit. A zero time passes;
// pair it with Required when the date is mandatory.
func NotAfter(field string, value, limit time.Time) Rule {
	return Rule{
		Check: func() bool { return value.IsZero() || !value.After(limit) },
		Error: ValidationError{
			Field:   field,
			Message: "must not be in the future",
			Key:     "validation.date_not_future",
			Values:  map[string]any{"field": field},
		},
	}
}

// OneOf requires value to be one of allowed.
func OneOf[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", joinValues(allowed)),
			Key:     "validation.in_list",
			Values:  map[string]any{"field": field, "allowed_values": allowed},
		},
	}
}

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
