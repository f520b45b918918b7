package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID int64, limit int, offset int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ledger_id, transaction_id, account_id, entry_type, amount, balance_after, memo, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, ledger_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(
			&e.LedgerID, &e.TransactionID, &e.AccountID, &e.EntryType,
			&e.Amount, &e.BalanceAfter, &e.Memo, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating ledger rows: %w", err)
	}
	return entries, nil
}
