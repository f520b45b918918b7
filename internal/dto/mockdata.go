package dto

// GenerateMockDataRequest defines the parameters of a synthetic-data run.
// Omitted fields fall back to the generator defaults.
type GenerateMockDataRequest struct {
	TotalCount   int64   `json:"totalCount" binding:"required,min=1,max=100000000"`
	FailureRate  float64 `json:"failureRate" binding:"omitempty,min=0,max=1"`
	MaxAccountID int64   `json:"maxAccountID" binding:"omitempty,min=2,max=99999999"`
	Seed         *int64  `json:"seed"` // Optional, for reproducible runs
}

// GenerateMockDataResponse reports what a synthetic-data run produced and
// where the TSV files were written.
type GenerateMockDataResponse struct {
	Transactions    int64  `json:"transactions"`
	LedgerEntries   int64  `json:"ledgerEntries"`
	Succeeded       int64  `json:"succeeded"`
	Failed          int64  `json:"failed"`
	ElapsedMillis   int64  `json:"elapsedMillis"`
	TransactionFile string `json:"transactionFile"`
	LedgerFile      string `json:"ledgerFile"`
}
