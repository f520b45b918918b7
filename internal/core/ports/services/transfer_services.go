package services

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/dto"
)

// TransferSvcFacade defines money movement between accounts of this bank.
type TransferSvcFacade interface {
	// Transfer moves money from the user's account to the receiver account
	// number, producing one transaction and its double-entry ledger pair
	// atomically. The receiver account number is check-digit validated before
	// any database work.
	Transfer(ctx context.Context, userID int64, senderAccountID int64, req dto.TransferRequest) (*domain.TransferResult, error)

	// GetTransaction retrieves a transaction record visible to the user.
	GetTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves transactions touching one of the user's
	// accounts, newest first.
	ListTransactions(ctx context.Context, userID int64, accountID int64, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}
