package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const groupIDPrefix = "TXN"

// NewTransactionGroupID builds a transaction group identifier of the form
// TXN-yyyyMMdd-NNNNNN-RRRR. The group ID ties the double-entry pair of an
// internal transfer (and the single entry of other categories) together.
func NewTransactionGroupID(now time.Time, sequence int64) (string, error) {
	suffix, err := randomDigits(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate group id suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%06d-%s", groupIDPrefix, now.Format("20060102"), sequence, suffix), nil
}

// randomDigits returns n cryptographically random decimal digits.
func randomDigits(n int) (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < n; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
