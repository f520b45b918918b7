package services

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/dto"
)

// LedgerSvcFacade defines read access to the append-only ledger.
type LedgerSvcFacade interface {
	// ListEntries retrieves ledger entries for one of the user's accounts,
	// newest first.
	ListEntries(ctx context.Context, userID int64, accountID int64, params dto.ListLedgerParams) ([]domain.LedgerEntry, error)
}
