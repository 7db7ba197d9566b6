package validator

import (
	"fmt"
	"strings"
)

func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %v", allowedValues),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}

func InListString(field, value string, allowedValues []string) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", ")),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}

// Semantic aliases for choice validation

func OneOf[T comparable](field string, value T, options []T) Rule {
	return InList(field, value, options)
}

func OneOfString(field, value string, options []string) Rule {
	return InListString(field, value, options)
}

func ValidEnum(field, value string, enumValues []string) Rule {
	return InListString(field, value, enumValues)
}

// ValidStatus could use InListString but provides a more semantic error
// message for lifecycle states.
func ValidStatus(field, value string, allowedStatuses []string) Rule {
	return Rule{
		Check: func() bool {
			for _, status := range allowedStatuses {
				if value == status {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("status must be one of: %s", strings.Join(allowedStatuses, ", ")),
			TranslationKey: "validation.valid_status",
			TranslationValues: map[string]any{
				"field":            field,
				"allowed_statuses": allowedStatuses,
			},
		},
	}
}
