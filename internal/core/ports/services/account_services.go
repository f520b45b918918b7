package services

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/dto"
)

// AccountReaderSvc defines read operations for account data. All operations
// verify that the account belongs to the requesting user.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account owned by the user.
	GetAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by the user.
	ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount opens a new account with a freshly issued account number.
	CreateAccount(ctx context.Context, userID int64, req dto.CreateAccountRequest) (*domain.Account, error)

	// CloseAccount moves an account to CLOSED. The balance must be zero.
	CloseAccount(ctx context.Context, userID int64, accountID int64) error
}

// CashSvc defines the over-the-counter cash operations.
type CashSvc interface {
	// Deposit credits cash into the account and records a DEPOSIT transaction.
	Deposit(ctx context.Context, userID int64, accountID int64, req dto.DepositRequest) (*domain.TransferResult, error)

	// Withdraw debits cash from the account after verifying the account
	// password, and records a WITHDRAWAL transaction.
	Withdraw(ctx context.Context, userID int64, accountID int64, req dto.WithdrawRequest) (*domain.TransferResult, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	CashSvc
}
