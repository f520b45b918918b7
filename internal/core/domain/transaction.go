package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferCategory determines how many ledger entries a transaction produces
// and which counterparty fields are populated: INTERNAL yields two entries,
// EXTERNAL zero or one (the customer side only), DEPOSIT and WITHDRAWAL one.
type TransferCategory string

const (
	Internal   TransferCategory = "INTERNAL"
	External   TransferCategory = "EXTERNAL"
	DepositTx  TransferCategory = "DEPOSIT"
	Withdrawal TransferCategory = "WITHDRAWAL"
)

// TransactionStatus is the terminal (or pending) state of a money movement.
// Only SUCCESS transactions may produce ledger entries or mutate balances.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusSuccess   TransactionStatus = "SUCCESS"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is the immutable record of one attempted money movement.
// Sender/receiver account IDs are nil when that side is not a customer of
// this bank; the external counterparty is then carried only as bank-code and
// account-number strings.
type Transaction struct {
	TransactionID         int64             `json:"transactionID"`
	GroupID               string            `json:"groupID"`
	Category              TransferCategory  `json:"transferCategory"`
	SenderAccountID       *int64            `json:"senderAccountID,omitempty"`
	SenderName            string            `json:"senderName,omitempty"`
	ReceiverBankCode      string            `json:"receiverBankCode,omitempty"`
	ReceiverAccountNumber string            `json:"receiverAccountNumber,omitempty"`
	ReceiverAccountID     *int64            `json:"receiverAccountID,omitempty"`
	ReceiverName          string            `json:"receiverName,omitempty"`
	Amount                decimal.Decimal   `json:"amount"`
	Status                TransactionStatus `json:"status"`
	FailureReason         string            `json:"failureReason,omitempty"`
	TransactionDate       time.Time         `json:"transactionDate"`
}

// TransferResult is what the live deposit/withdraw/transfer paths hand back:
// the recorded transaction and the mover's balance after the movement.
type TransferResult struct {
	TransactionID int64           `json:"transactionID"`
	GroupID       string          `json:"groupID"`
	AccountID     int64           `json:"accountID"`
	Balance       decimal.Decimal `json:"balance"`
}
