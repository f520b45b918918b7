// Package accountnumber generates and validates 12-digit account numbers:
// a 3-digit account-type code, an 8-digit zero-padded sequence number and a
// trailing modulo-11 check digit. Check-digit validation lets any caller
// reject a mistyped account number without a database round trip.
package accountnumber

import (
	"fmt"
	"strings"

	"github.com/kyukyubank/banking-service/internal/apperrors"
)

// checkDigitWeights are applied right-to-left over the 11-digit prefix:
// the rightmost digit gets weight 2.
var checkDigitWeights = [11]int{2, 3, 4, 5, 6, 7, 2, 3, 4, 5, 6}

// CalculateCheckDigit computes the check digit for an 11-digit account number
// prefix. Hyphens are stripped before validation. The result is always a
// single decimal digit: a raw value of 10 maps to 0.
func CalculateCheckDigit(prefix string) (int, error) {
	digits := strings.ReplaceAll(prefix, "-", "")
	if len(digits) != 11 {
		return 0, fmt.Errorf("%w: account number prefix must be 11 digits, got %q", apperrors.ErrValidation, prefix)
	}

	sum := 0
	for i := 0; i < len(digits); i++ {
		c := digits[len(digits)-1-i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: account number prefix must contain only digits, got %q", apperrors.ErrValidation, prefix)
		}
		sum += int(c-'0') * checkDigitWeights[i]
	}

	remainder := sum % 11
	checkDigit := (11 - remainder) % 11
	if checkDigit == 10 {
		checkDigit = 0
	}
	return checkDigit, nil
}

// Validate reports whether a full 12-digit account number carries the check
// digit derivable from its first 11 digits. It never returns an error: any
// malformed input (wrong length after hyphen stripping, non-digit content)
// is simply invalid.
func Validate(accountNumber string) bool {
	digits := strings.ReplaceAll(accountNumber, "-", "")
	if len(digits) != 12 {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}

	expected, err := CalculateCheckDigit(digits[:11])
	if err != nil {
		return false
	}
	return expected == int(digits[11]-'0')
}
