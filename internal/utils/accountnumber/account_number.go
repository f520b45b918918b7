package accountnumber

import (
	"fmt"

	"github.com/kyukyubank/banking-service/internal/apperrors"
)

const (
	// MinSequenceNumber and MaxSequenceNumber bound the 8-digit serial
	// segment of an account number. Values outside this range are rejected,
	// never silently truncated.
	MinSequenceNumber = 1
	MaxSequenceNumber = 99_999_999
)

// Generate composes a 12-digit account number from a 3-digit account-type
// code and a sequence number: code + zero-padded sequence + check digit.
func Generate(accountTypeCode string, sequenceNumber int64) (string, error) {
	if sequenceNumber < MinSequenceNumber || sequenceNumber > MaxSequenceNumber {
		return "", fmt.Errorf("%w: sequence number must be between %d and %d, got %d",
			apperrors.ErrOutOfRange, MinSequenceNumber, MaxSequenceNumber, sequenceNumber)
	}

	prefix := fmt.Sprintf("%s%08d", accountTypeCode, sequenceNumber)
	checkDigit, err := CalculateCheckDigit(prefix)
	if err != nil {
		// A malformed account-type code surfaces here as an invalid prefix.
		return "", err
	}
	return fmt.Sprintf("%s%d", prefix, checkDigit), nil
}

// WithHyphens formats a 12-digit account number in 4-4-4 display grouping.
// Anything that is not exactly 12 characters is returned unchanged.
func WithHyphens(accountNumber string) string {
	if len(accountNumber) != 12 {
		return accountNumber
	}
	return accountNumber[0:4] + "-" + accountNumber[4:8] + "-" + accountNumber[8:12]
}
