package validator

import (
	"regexp"
	"strings"
)

var subdomainRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]*$`)

// ValidSubdomain validates that a string is a valid subdomain.
func ValidSubdomain(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			// Subdomain should be 1-63 characters
			if len(value) > 63 {
				return false
			}

			// Cannot start or end with hyphen
			if strings.HasPrefix(value, "-") || strings.HasSuffix(value, "-") {
				return false
			}

			return subdomainRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid subdomain (1-63 characters, letters, numbers, and hyphens)",
			TranslationKey: "validation.subdomain",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
