// Package accounting holds the double-entry decomposition rules shared by
// the live transaction path and the synthetic data generator. A transaction
// attempt decomposes into zero, one or two ledger entries plus the balance
// snapshots those entries carry; both consumers apply exactly the same rules.
package accounting

import (
	"fmt"

	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Decomposition is the full ledger effect of one transaction: the entries to
// append and the resulting balance per touched account. A transaction that
// is not SUCCESS decomposes to nothing.
type Decomposition struct {
	Entries     []domain.LedgerEntry
	NewBalances map[int64]decimal.Decimal
}

// BalanceFunc resolves the balance of an account immediately before the
// transaction applies.
type BalanceFunc func(accountID int64) decimal.Decimal

// Decompose derives the ledger entries and balance deltas for a transaction.
//
//	INTERNAL    two entries: DEBIT on sender, CREDIT on receiver, same amount
//	EXTERNAL    one entry on whichever side is this bank's customer
//	DEPOSIT     one CREDIT on the receiving account
//	WITHDRAWAL  one DEBIT on the sending account
//
// The amount must be strictly positive and an internal transfer must involve
// two distinct accounts; violations return a validation error before any
// balance is read.
func Decompose(txn domain.Transaction, balanceOf BalanceFunc) (Decomposition, error) {
	if txn.Amount.LessThanOrEqual(decimal.Zero) {
		return Decomposition{}, fmt.Errorf("%w: transaction amount must be positive, got %s",
			apperrors.ErrValidation, txn.Amount)
	}

	dec := Decomposition{NewBalances: make(map[int64]decimal.Decimal)}
	if txn.Status != domain.StatusSuccess {
		return dec, nil
	}

	switch txn.Category {
	case domain.Internal:
		if txn.SenderAccountID == nil || txn.ReceiverAccountID == nil {
			return Decomposition{}, fmt.Errorf("%w: internal transfer requires sender and receiver accounts",
				apperrors.ErrValidation)
		}
		if *txn.SenderAccountID == *txn.ReceiverAccountID {
			return Decomposition{}, fmt.Errorf("%w: internal transfer sender and receiver must differ",
				apperrors.ErrValidation)
		}
		dec.debit(txn, *txn.SenderAccountID, balanceOf, txn.ReceiverName)
		dec.credit(txn, *txn.ReceiverAccountID, balanceOf, txn.SenderName)

	case domain.External:
		outgoing := txn.SenderAccountID != nil
		incoming := txn.ReceiverAccountID != nil
		if outgoing == incoming {
			return Decomposition{}, fmt.Errorf("%w: external transfer must have exactly one customer side",
				apperrors.ErrValidation)
		}
		if outgoing {
			dec.debit(txn, *txn.SenderAccountID, balanceOf, txn.ReceiverName)
		} else {
			dec.credit(txn, *txn.ReceiverAccountID, balanceOf, txn.SenderName)
		}

	case domain.DepositTx:
		if txn.ReceiverAccountID == nil {
			return Decomposition{}, fmt.Errorf("%w: deposit requires a receiving account", apperrors.ErrValidation)
		}
		dec.credit(txn, *txn.ReceiverAccountID, balanceOf, txn.SenderName)

	case domain.Withdrawal:
		if txn.SenderAccountID == nil {
			return Decomposition{}, fmt.Errorf("%w: withdrawal requires a sending account", apperrors.ErrValidation)
		}
		dec.debit(txn, *txn.SenderAccountID, balanceOf, txn.ReceiverName)

	default:
		return Decomposition{}, fmt.Errorf("%w: unknown transfer category %q", apperrors.ErrValidation, txn.Category)
	}

	return dec, nil
}

func (d *Decomposition) debit(txn domain.Transaction, accountID int64, balanceOf BalanceFunc, memo string) {
	after := balanceOf(accountID).Sub(txn.Amount)
	d.append(txn, accountID, domain.DebitEntry, after, memo)
}

func (d *Decomposition) credit(txn domain.Transaction, accountID int64, balanceOf BalanceFunc, memo string) {
	after := balanceOf(accountID).Add(txn.Amount)
	d.append(txn, accountID, domain.CreditEntry, after, memo)
}

func (d *Decomposition) append(txn domain.Transaction, accountID int64, entryType domain.EntryType, after decimal.Decimal, memo string) {
	d.Entries = append(d.Entries, domain.LedgerEntry{
		TransactionID: txn.TransactionID,
		AccountID:     accountID,
		EntryType:     entryType,
		Amount:        txn.Amount,
		BalanceAfter:  after,
		Memo:          memo,
		CreatedAt:     txn.TransactionDate,
	})
	d.NewBalances[accountID] = after
}
