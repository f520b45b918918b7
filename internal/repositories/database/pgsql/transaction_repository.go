package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
	"github.com/kyukyubank/banking-service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}, accountRepo}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, group_id, transfer_category, sender_account_id, sender_name,
	receiver_bank_code, receiver_account_number, receiver_account_id, receiver_name,
	amount, status, failure_reason, transaction_date`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID, &t.GroupID, &t.Category, &t.SenderAccountID, &t.SenderName,
		&t.ReceiverBankCode, &t.ReceiverAccountNumber, &t.ReceiverAccountID, &t.ReceiverName,
		&t.Amount, &t.Status, &t.FailureReason, &t.TransactionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE sender_account_id = $1 OR receiver_account_id = $1
		ORDER BY transaction_date DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) NextTransactionGroupSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('transaction_group_seq');`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance transaction group sequence: %w", err)
	}
	return seq, nil
}

// SaveTransfer persists the transaction, its ledger entries and the new
// account balances in a single database transaction. Touched accounts are
// locked in ascending ID order before any write, and the ledger decomposition
// is computed from the locked rows' balances. Balances read by the caller
// before this point are advisory only: a concurrent movement may have changed
// them, and recomputing under lock is what keeps the balance_after snapshots
// and stored balances a serial history.
func (r *PgxTransactionRepository) SaveTransfer(ctx context.Context, txn domain.Transaction) (txnID int64, newBalances map[int64]decimal.Decimal, err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	accountIDs := touchedAccountIDs(txn)
	locked := make(map[int64]domain.Account)
	if len(accountIDs) > 0 {
		locked, err = r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
		if err != nil {
			return 0, nil, err
		}
		if len(locked) != len(accountIDs) {
			err = fmt.Errorf("expected to lock %d accounts, locked %d", len(accountIDs), len(locked))
			return 0, nil, err
		}
	}

	dec, err := accounting.Decompose(txn, func(accountID int64) decimal.Decimal {
		return locked[accountID].Balance
	})
	if err != nil {
		return 0, nil, err
	}
	for accountID, balance := range dec.NewBalances {
		if balance.IsNegative() {
			err = fmt.Errorf("%w: account %d balance would drop to %s",
				apperrors.ErrInsufficientBalance, accountID, balance)
			return 0, nil, err
		}
	}

	insertTxn := `
		INSERT INTO transactions (group_id, transfer_category, sender_account_id, sender_name,
			receiver_bank_code, receiver_account_number, receiver_account_id, receiver_name,
			amount, status, failure_reason, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING transaction_id;
	`
	err = tx.QueryRow(ctx, insertTxn,
		txn.GroupID, txn.Category, txn.SenderAccountID, txn.SenderName,
		txn.ReceiverBankCode, txn.ReceiverAccountNumber, txn.ReceiverAccountID, txn.ReceiverName,
		txn.Amount, txn.Status, txn.FailureReason, txn.TransactionDate,
	).Scan(&txnID)
	if err != nil {
		err = fmt.Errorf("failed to insert transaction: %w", err)
		return 0, nil, err
	}

	insertEntry := `
		INSERT INTO ledger_entries (transaction_id, account_id, entry_type, amount, balance_after, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, entry := range dec.Entries {
		if _, err = tx.Exec(ctx, insertEntry,
			txnID, entry.AccountID, entry.EntryType, entry.Amount,
			entry.BalanceAfter, entry.Memo, entry.CreatedAt,
		); err != nil {
			err = fmt.Errorf("failed to insert ledger entry for account %d: %w", entry.AccountID, err)
			return 0, nil, err
		}
	}

	if len(dec.NewBalances) > 0 {
		if err = r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, dec.NewBalances); err != nil {
			return 0, nil, err
		}
	}

	if err = r.Commit(ctx, tx); err != nil {
		return 0, nil, err
	}
	return txnID, dec.NewBalances, nil
}

// touchedAccountIDs lists the customer account IDs a transaction moves money
// on, ascending and de-duplicated for a stable lock order.
func touchedAccountIDs(txn domain.Transaction) []int64 {
	var ids []int64
	if txn.SenderAccountID != nil {
		ids = append(ids, *txn.SenderAccountID)
	}
	if txn.ReceiverAccountID != nil && (txn.SenderAccountID == nil || *txn.ReceiverAccountID != *txn.SenderAccountID) {
		ids = append(ids, *txn.ReceiverAccountID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
