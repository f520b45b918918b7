package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, account_number, password_hash, bank_code, account_type,
	currency_code, status, balance, opened_at, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID, &a.UserID, &a.AccountNumber, &a.PasswordHash, &a.BankCode, &a.Type,
		&a.CurrencyCode, &a.Status, &a.Balance, &a.OpenedAt, &a.CreatedAt, &a.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to find account by number: %w", err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountsByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY account_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	query := `
		INSERT INTO accounts (user_id, account_number, password_hash, bank_code, account_type,
			currency_code, status, balance, opened_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING account_id;
	`
	var accountID int64
	err := r.Pool.QueryRow(ctx, query,
		account.UserID, account.AccountNumber, account.PasswordHash, account.BankCode, account.Type,
		account.CurrencyCode, account.Status, account.Balance, account.OpenedAt,
		account.CreatedAt, account.LastUpdatedAt,
	).Scan(&accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccountNumber, account.AccountNumber)
		}
		return 0, fmt.Errorf("failed to save account: %w", err)
	}
	return accountID, nil
}

func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error {
	query := `UPDATE accounts SET status = $2, last_updated_at = NOW() WHERE account_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, accountID, status)
	if err != nil {
		return fmt.Errorf("failed to update status of account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (r *PgxAccountRepository) NextAccountNumberSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('account_number_seq');`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance account number sequence: %w", err)
	}
	return seq, nil
}

func (r *PgxAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`
	if err := r.Pool.QueryRow(ctx, query, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account number existence: %w", err)
	}
	return exists, nil
}

// FindAccountsByIDsForUpdate retrieves accounts by ID and locks the rows
// within the given transaction. Callers must pass IDs in ascending order to
// keep the lock order deadlock-free.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []int64) (map[int64]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[int64]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating locked account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, newBalances map[int64]decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $2, last_updated_at = NOW() WHERE account_id = $1;`
	for accountID, balance := range newBalances {
		tag, err := tx.Exec(ctx, query, accountID, balance)
		if err != nil {
			return fmt.Errorf("failed to update balance of account %d: %w", accountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
	}
	return nil
}
