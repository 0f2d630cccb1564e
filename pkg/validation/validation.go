package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCityNameLength is the longest city name accepted, in runes
const MaxCityNameLength = 100

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidCityName accepts non-blank names of bounded length without control characters
func IsValidCityName(city string) bool {
	trimmed, ok := TrimAndValidate(city)
	if !ok || utf8.RuneCountInString(trimmed) > MaxCityNameLength {
		return false
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
