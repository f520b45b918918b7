package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its full account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByUserID retrieves all accounts owned by a user.
	FindAccountsByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account and returns its generated ID.
	SaveAccount(ctx context.Context, account domain.Account) (int64, error)

	// UpdateAccountStatus moves an account to a new lifecycle status.
	UpdateAccountStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error
}

// AccountNumberSupport defines operations backing account number issuance.
type AccountNumberSupport interface {
	// NextAccountNumberSequence reserves and returns the next sequence number
	// used as the middle segment of a new account number.
	NextAccountNumberSequence(ctx context.Context) (int64, error)

	// ExistsByAccountNumber reports whether an account number is already taken.
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
}

// AccountTransactionSupport defines operations used inside money-movement
// database transactions.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update
	// within a transaction. Lock order is the caller's responsibility.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []int64) (map[int64]domain.Account, error)

	// UpdateAccountBalancesInTx sets the new balance for each account within
	// the given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, newBalances map[int64]decimal.Decimal) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountNumberSupport
	AccountTransactionSupport
	TransactionManager
}
