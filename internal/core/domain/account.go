package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the product class of an account. Its 3-digit code
// is the leading segment of every account number.
type AccountType string

const (
	Deposit         AccountType = "DEPOSIT"
	FixedDeposit    AccountType = "FIXED_DEPOSIT"
	Saving          AccountType = "SAVING"
	ForeignCurrency AccountType = "FOREIGN_CURRENCY"
)

// accountTypeCodes is the authoritative type↔code mapping. Account numbers
// are derived from it and nothing else; divergent copies of this table in
// earlier revisions were collapsed into this one.
var accountTypeCodes = map[AccountType]string{
	Deposit:         "100",
	FixedDeposit:    "200",
	Saving:          "300",
	ForeignCurrency: "400",
}

// Code returns the 3-digit account-type code, or "" for an unknown type.
func (t AccountType) Code() string {
	return accountTypeCodes[t]
}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	_, ok := accountTypeCodes[t]
	return ok
}

// AccountTypeFromCode resolves a 3-digit code back to its account type.
func AccountTypeFromCode(code string) (AccountType, bool) {
	for t, c := range accountTypeCodes {
		if c == code {
			return t, true
		}
	}
	return "", false
}

// AccountStatus is the lifecycle state of an account. Only ACTIVE accounts
// may move money.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
	AccountClosed AccountStatus = "CLOSED"
)

// BankCode identifies a participating bank on the wire.
type BankCode string

const (
	BankOfEarth BankCode = "001"
	KyukyuBank  BankCode = "1004" // this bank
	YBank       BankCode = "1009"
	XBank       BankCode = "1010"
	ZBank       BankCode = "1011"
)

var bankNames = map[BankCode]string{
	BankOfEarth: "Bank of Earth",
	KyukyuBank:  "Kyukyu Bank",
	YBank:       "Y Bank",
	XBank:       "X Bank",
	ZBank:       "Z Bank",
}

// BankName returns the display name for the bank code, or "" if unknown.
func (b BankCode) BankName() string {
	return bankNames[b]
}

// ExternalBankCodes lists the counterparty banks reachable by external transfer.
func ExternalBankCodes() []BankCode {
	return []BankCode{BankOfEarth, YBank, XBank, ZBank}
}

// Account is a customer account on this bank's book. The account number is
// immutable once generated and its check digit is the sole validity criterion
// for offline validation.
type Account struct {
	AccountID     int64           `json:"accountID"`
	UserID        int64           `json:"userID"`
	AccountNumber string          `json:"accountNumber"`
	PasswordHash  string          `json:"-"`
	BankCode      BankCode        `json:"bankCode"`
	Type          AccountType     `json:"type"`
	CurrencyCode  string          `json:"currencyCode"`
	Status        AccountStatus   `json:"status"`
	Balance       decimal.Decimal `json:"balance"`
	OpenedAt      time.Time       `json:"openedAt"`
	AuditFields
}
