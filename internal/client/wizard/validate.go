package wizard

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}$`)
)

// ValidEmail reports whether the address looks like an email. When
// allowedDomain is non-empty the address must additionally belong to
// that domain.
func ValidEmail(email, allowedDomain string) bool {
	if !emailPattern.MatchString(email) {
		return false
	}
	if allowedDomain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(allowedDomain))
}

// ValidPassword requires at least 8 characters with at least one
// uppercase letter, one lowercase letter, one digit and one symbol.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSpace(r) || unicode.IsLetter(r) || r == '_':
			// neither a symbol nor a missing class
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
