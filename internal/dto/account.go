package dto

import (
	"time"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/utils/accountnumber"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	Type         domain.AccountType `json:"type" binding:"required,oneof=DEPOSIT FIXED_DEPOSIT SAVING FOREIGN_CURRENCY"`
	Password     string             `json:"password" binding:"required,len=4,numeric"`
	CurrencyCode string             `json:"currencyCode"` // Optional, defaults to KRW
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID              int64                `json:"accountID"`
	UserID                 int64                `json:"userID"`
	AccountNumber          string               `json:"accountNumber"`
	AccountNumberFormatted string               `json:"accountNumberFormatted"`
	BankCode               domain.BankCode      `json:"bankCode"`
	BankName               string               `json:"bankName"`
	Type                   domain.AccountType   `json:"type"`
	CurrencyCode           string               `json:"currencyCode"`
	Status                 domain.AccountStatus `json:"status"`
	Balance                decimal.Decimal      `json:"balance"`
	OpenedAt               time.Time            `json:"openedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:              acc.AccountID,
		UserID:                 acc.UserID,
		AccountNumber:          acc.AccountNumber,
		AccountNumberFormatted: accountnumber.WithHyphens(acc.AccountNumber),
		BankCode:               acc.BankCode,
		BankName:               acc.BankCode.BankName(),
		Type:                   acc.Type,
		CurrencyCode:           acc.CurrencyCode,
		Status:                 acc.Status,
		Balance:                acc.Balance,
		OpenedAt:               acc.OpenedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID     int64           `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
}

// ValidateAccountNumberResponse reports the offline check-digit verdict for
// an account number; no database lookup is involved.
type ValidateAccountNumberResponse struct {
	AccountNumber string `json:"accountNumber"`
	Valid         bool   `json:"valid"`
}

// DepositRequest defines the data for a cash deposit into an account.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WithdrawRequest defines the data for a cash withdrawal from an account.
type WithdrawRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Password string          `json:"password" binding:"required"`
}
