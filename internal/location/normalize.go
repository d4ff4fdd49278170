package location

import (
	"strings"

	"github.com/stepanukha/Weather-App/internal/common"
)

const (
	// DefaultCountry is assumed when no country code is given.
	DefaultCountry = "US"

	usCodeWidth = 5
)

// Normalize reduces a US postal code to exactly five digits: non-digits are
// dropped, the rest is truncated to five characters and left-padded with
// zeros. Normalize(Normalize(x)) == Normalize(x).
func Normalize(code string) string {
	digits := common.DigitsOnly(code)
	if len(digits) > usCodeWidth {
		digits = digits[:usCodeWidth]
	}
	return strings.Repeat("0", usCodeWidth-len(digits)) + digits
}

func normalizeCountry(countryCode string) string {
	cc := strings.ToUpper(strings.TrimSpace(countryCode))
	if cc == "" {
		return DefaultCountry
	}
	return cc
}
