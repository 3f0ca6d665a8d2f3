package checkout

import (
	"regexp"
	"strings"
)

// Validation messages match what the storefront shows inline under each
// field.
const (
	msgRequired     = "This field is required"
	msgInvalidEmail = "Please enter a valid email address"
	msgInvalidPhone = "Please enter a valid phone number"
	msgInvalidCard  = "Please enter a valid 16-digit card number"
	msgInvalidExp   = "Please enter a valid expiry date (MM/YY)"
	msgInvalidCVV   = "Please enter a valid CVV"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	cardRe   = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// FieldErrors maps a field name to its display error message.
type FieldErrors map[string]string

func (fe FieldErrors) set(field, msg string) {
	if fe != nil {
		fe[field] = msg
	}
}

// Valid reports whether no field carries an error.
func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

func ValidEmail(v string) bool {
	return emailRe.MatchString(v)
}

func ValidPhone(v string) bool {
	return phoneRe.MatchString(v)
}

func ValidCardNumber(v string) bool {
	return cardRe.MatchString(v)
}

func ValidExpiryDate(v string) bool {
	return expiryRe.MatchString(v)
}

func ValidCVV(v string) bool {
	return cvvRe.MatchString(v)
}

func required(v string) bool {
	return strings.TrimSpace(v) != ""
}
