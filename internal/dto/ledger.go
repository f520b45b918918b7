package dto

import (
	"time"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse defines the data returned for one ledger row.
type LedgerEntryResponse struct {
	LedgerID      int64            `json:"ledgerID"`
	TransactionID int64            `json:"transactionID"`
	AccountID     int64            `json:"accountID"`
	EntryType     domain.EntryType `json:"entryType"`
	Amount        decimal.Decimal  `json:"amount"`
	BalanceAfter  decimal.Decimal  `json:"balanceAfter"`
	Memo          string           `json:"memo,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(entry *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerID:      entry.LedgerID,
		TransactionID: entry.TransactionID,
		AccountID:     entry.AccountID,
		EntryType:     entry.EntryType,
		Amount:        entry.Amount,
		BalanceAfter:  entry.BalanceAfter,
		Memo:          entry.Memo,
		CreatedAt:     entry.CreatedAt,
	}
}

// ListLedgerParams defines query parameters for listing ledger entries.
type ListLedgerParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListLedgerResponse wraps one page of ledger entries. HasNext reports
// whether another page exists past the requested limit.
type ListLedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	HasNext bool                  `json:"hasNext"`
}

// ToListLedgerResponse converts domain ledger entries to the list DTO.
// The service fetches limit+1 rows; the surplus row only signals HasNext and
// is not returned.
func ToListLedgerResponse(entries []domain.LedgerEntry, limit int) ListLedgerResponse {
	hasNext := len(entries) > limit
	if hasNext {
		entries = entries[:limit]
	}
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return ListLedgerResponse{Entries: res, HasNext: hasNext}
}
