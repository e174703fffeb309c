package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// Area code (no leading zero) followed by an 8 digit landline or a 9 digit mobile starting with 9
	phoneRegex = regexp.MustCompile(`^[1-9][0-9](9[0-9]{8}|[2-8][0-9]{7})$`)
	// Regex to remove non-digit characters
	digitsOnlyRegex = regexp.MustCompile(`[^0-9]`)
)

// ErrInvalidPhone is returned for numbers that are not Brazilian numbers with area code
var ErrInvalidPhone = errors.New("invalid phone number format")

// NormalizePhoneNumber strips formatting and the +55 country code, leaving
// area code and subscriber number digits
func NormalizePhoneNumber(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", errors.New("phone number cannot be empty")
	}

	// Remove all non-digit characters (hyphens, spaces, parentheses, etc.)
	normalized := digitsOnlyRegex.ReplaceAllString(phone, "")

	// Handle international format (+55)
	if strings.HasPrefix(normalized, "55") && len(normalized) >= 12 {
		normalized = normalized[2:]
	}
	// Trunk prefix used when dialing between area codes
	if strings.HasPrefix(normalized, "0") && len(normalized) >= 11 {
		normalized = normalized[1:]
	}

	if !phoneRegex.MatchString(normalized) {
		return "", ErrInvalidPhone
	}

	return normalized, nil
}

// FormatPhoneNumberForDisplay formats a normalized phone number for display
// Example: "11999999999" -> "(11) 99999-9999"
func FormatPhoneNumberForDisplay(phone string) string {
	switch len(phone) {
	case 11:
		return "(" + phone[:2] + ") " + phone[2:7] + "-" + phone[7:]
	case 10:
		return "(" + phone[:2] + ") " + phone[2:6] + "-" + phone[6:]
	default:
		return phone
	}
}

// CanonicalPhone normalizes phone and returns it in display format
func CanonicalPhone(phone string) (string, error) {
	normalized, err := NormalizePhoneNumber(phone)
	if err != nil {
		return "", err
	}
	return FormatPhoneNumberForDisplay(normalized), nil
}
