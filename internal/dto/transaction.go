package dto

import (
	"time"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest defines the data for an internal transfer out of the
// sending account named in the URL. The receiver account number must carry a
// valid check digit; the "accountnumber" binding tag enforces that before the
// service layer runs.
type TransferRequest struct {
	ReceiverAccountNumber string          `json:"receiverAccountNumber" binding:"required,accountnumber"`
	Amount                decimal.Decimal `json:"amount" binding:"required"`
	Password              string          `json:"password" binding:"required"`
	Memo                  string          `json:"memo"`
}

// TransferResponse defines the data returned after a money movement.
type TransferResponse struct {
	TransactionID int64           `json:"transactionID"`
	GroupID       string          `json:"groupID"`
	AccountID     int64           `json:"accountID"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToTransferResponse converts a domain.TransferResult to TransferResponse DTO.
func ToTransferResponse(res *domain.TransferResult) TransferResponse {
	return TransferResponse{
		TransactionID: res.TransactionID,
		GroupID:       res.GroupID,
		AccountID:     res.AccountID,
		Balance:       res.Balance,
	}
}

// TransactionResponse defines the data returned for a transaction record.
type TransactionResponse struct {
	TransactionID         int64                    `json:"transactionID"`
	GroupID               string                   `json:"groupID"`
	Category              domain.TransferCategory  `json:"transferCategory"`
	SenderAccountID       *int64                   `json:"senderAccountID,omitempty"`
	SenderName            string                   `json:"senderName,omitempty"`
	ReceiverBankCode      string                   `json:"receiverBankCode,omitempty"`
	ReceiverAccountNumber string                   `json:"receiverAccountNumber,omitempty"`
	ReceiverAccountID     *int64                   `json:"receiverAccountID,omitempty"`
	ReceiverName          string                   `json:"receiverName,omitempty"`
	Amount                decimal.Decimal          `json:"amount"`
	Status                domain.TransactionStatus `json:"status"`
	FailureReason         string                   `json:"failureReason,omitempty"`
	TransactionDate       time.Time                `json:"transactionDate"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         txn.TransactionID,
		GroupID:               txn.GroupID,
		Category:              txn.Category,
		SenderAccountID:       txn.SenderAccountID,
		SenderName:            txn.SenderName,
		ReceiverBankCode:      txn.ReceiverBankCode,
		ReceiverAccountNumber: txn.ReceiverAccountNumber,
		ReceiverAccountID:     txn.ReceiverAccountID,
		ReceiverName:          txn.ReceiverName,
		Amount:                txn.Amount,
		Status:                txn.Status,
		FailureReason:         txn.FailureReason,
		TransactionDate:       txn.TransactionDate,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListTransactionsResponse wraps one page of transactions. HasNext reports
// whether another page exists past the requested limit.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	HasNext      bool                  `json:"hasNext"`
}

// ToListTransactionsResponse converts domain transactions to the list DTO.
// The service fetches limit+1 rows; the surplus row only signals HasNext and
// is not returned.
func ToListTransactionsResponse(txns []domain.Transaction, limit int) ListTransactionsResponse {
	hasNext := len(txns) > limit
	if hasNext {
		txns = txns[:limit]
	}
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, HasNext: hasNext}
}
