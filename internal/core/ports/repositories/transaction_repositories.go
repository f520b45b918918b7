package repositories

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction records.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves transactions touching an account,
	// newest first.
	ListTransactionsByAccountID(ctx context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines the atomic persistence of a money movement.
type TransactionWriter interface {
	// NextTransactionGroupSequence reserves the next group-ID sequence number.
	NextTransactionGroupSequence(ctx context.Context) (int64, error)

	// SaveTransfer persists the transaction record, its ledger entries and the
	// resulting balances in a single database transaction. The touched accounts
	// are locked in ascending ID order and the ledger decomposition is computed
	// from the locked rows' balances, so concurrent movements on the same
	// account serialize instead of overwriting each other. A balance that would
	// drop below zero under lock aborts with ErrInsufficientBalance. It returns
	// the generated transaction ID and the balances after the movement.
	SaveTransfer(ctx context.Context, txn domain.Transaction) (int64, map[int64]decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
