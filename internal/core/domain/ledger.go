package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the double-entry side of a ledger row. DEBIT decreases the
// customer's asset view on the bank's book (withdrawal-like), CREDIT
// increases it (deposit-like).
type EntryType string

const (
	DebitEntry  EntryType = "DEBIT"
	CreditEntry EntryType = "CREDIT"
)

// LedgerEntry is one append-only row of the ledger: a single account side of
// a successful transaction, with a snapshot of the balance after it applied.
type LedgerEntry struct {
	LedgerID      int64           `json:"ledgerID"`
	TransactionID int64           `json:"transactionID"`
	AccountID     int64           `json:"accountID"`
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Memo          string          `json:"memo"`
	CreatedAt     time.Time       `json:"createdAt"`
}
