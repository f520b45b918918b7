package repositories

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/core/domain"
)

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// ListEntriesByAccountID retrieves ledger entries for an account, newest
	// first, with offset/limit pagination.
	ListEntriesByAccountID(ctx context.Context, accountID int64, limit int, offset int) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
// The ledger is append-only; writes happen exclusively through
// TransactionWriter.SaveTransfer.
type LedgerRepositoryFacade interface {
	LedgerReader
}
