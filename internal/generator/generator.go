// Package generator produces large synthetic transaction and ledger datasets
// as tab-separated files suitable for COPY-style bulk loading. It reuses the
// live decomposition rules from the accounting package so that the generated
// ledger obeys the same double-entry invariants as real traffic.
package generator

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/utils/accountnumber"
	"github.com/kyukyubank/banking-service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	// writeBufferSize is the bufio buffer per sink; rows are short, so 1MB
	// keeps syscall counts low for multi-million-row runs.
	writeBufferSize = 1 << 20

	// nullField is the TSV sentinel for an absent optional column.
	nullField = `\N`

	// timestampLayout matches the bulk-load timestamp format.
	timestampLayout = "2006-01-02 15:04:05"

	// atmCounterparty labels the cash side of deposits and withdrawals.
	atmCounterparty = "ATM"
)

// Summary reports what a completed run produced.
type Summary struct {
	Transactions  int64
	LedgerEntries int64
	Succeeded     int64
	Failed        int64
	Elapsed       time.Duration
}

// Generator emits synthetic transactions and their ledger decomposition.
// Balances live in a run-scoped cache owned by the instance, so concurrent
// runs never share state. A Generator is single-use per Run call sequence
// and not safe for concurrent use.
type Generator struct {
	cfg      Config
	rnd      *rand.Rand
	logger   *slog.Logger
	picker   *categoryPicker
	balances map[int64]decimal.Decimal
}

// New validates cfg and builds a generator. A nil Rand gets a time-seeded
// source, a nil Logger falls back to slog.Default, a zero BaseTime becomes
// time.Now().
func New(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseTime.IsZero() {
		cfg.BaseTime = time.Now()
	}
	return &Generator{
		cfg:      cfg,
		rnd:      rnd,
		logger:   logger,
		picker:   newCategoryPicker(cfg.CategoryDist),
		balances: make(map[int64]decimal.Decimal),
	}, nil
}

// Run writes cfg.TotalCount transaction rows to txSink and the derived
// ledger rows to ledgerSink. The first write or decomposition error aborts
// the run; there is no partial best-effort mode.
func (g *Generator) Run(txSink, ledgerSink io.Writer) (Summary, error) {
	start := time.Now()
	txw := bufio.NewWriterSize(txSink, writeBufferSize)
	lw := bufio.NewWriterSize(ledgerSink, writeBufferSize)

	g.logger.Info("starting synthetic data generation",
		"totalCount", g.cfg.TotalCount,
		"maxAccountID", g.cfg.MaxAccountID,
		"failureRate", g.cfg.FailureRate)

	var sum Summary
	var ledgerID int64
	base := g.cfg.BaseTime

	for txID := int64(1); txID <= g.cfg.TotalCount; txID++ {
		txn := g.nextTransaction(txID, g.picker.pick(g.rnd), base)

		// Balances are materialized for every touched account, even on a
		// FAILED attempt, so the account exists with a starting balance the
		// moment it first appears in the dataset.
		g.touchBalances(txn)

		dec, err := accounting.Decompose(txn, g.balanceAt)
		if err != nil {
			return sum, fmt.Errorf("failed to decompose transaction %d: %w", txID, err)
		}

		if err := g.writeTransactionRow(txw, txn); err != nil {
			return sum, fmt.Errorf("failed to write transaction %d: %w", txID, err)
		}
		sum.Transactions++

		for _, entry := range dec.Entries {
			ledgerID++
			entry.LedgerID = ledgerID
			if err := g.writeLedgerRow(lw, entry); err != nil {
				return sum, fmt.Errorf("failed to write ledger entry %d: %w", ledgerID, err)
			}
			sum.LedgerEntries++
		}
		for accountID, balance := range dec.NewBalances {
			g.balances[accountID] = balance
		}

		if txn.Status == domain.StatusSuccess {
			sum.Succeeded++
		} else {
			sum.Failed++
		}

		if g.cfg.ProgressEvery > 0 && txID%g.cfg.ProgressEvery == 0 {
			g.logger.Info("generation progress",
				"transactions", txID,
				"ledgerEntries", sum.LedgerEntries,
				"elapsed", time.Since(start).Round(time.Millisecond).String())
		}
	}

	if err := txw.Flush(); err != nil {
		return sum, fmt.Errorf("failed to flush transaction sink: %w", err)
	}
	if err := lw.Flush(); err != nil {
		return sum, fmt.Errorf("failed to flush ledger sink: %w", err)
	}

	sum.Elapsed = time.Since(start)
	g.logger.Info("synthetic data generation complete",
		"transactions", sum.Transactions,
		"ledgerEntries", sum.LedgerEntries,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"elapsed", sum.Elapsed.Round(time.Millisecond).String())
	return sum, nil
}

// nextTransaction fabricates one transaction of the given category.
func (g *Generator) nextTransaction(txID int64, category domain.TransferCategory, base time.Time) domain.Transaction {
	txn := domain.Transaction{
		TransactionID:   txID,
		GroupID:         fmt.Sprintf("TXN-%s-%06d-%04d", base.Format("20060102"), txID%1_000_000, g.rnd.Intn(10_000)),
		Category:        category,
		Amount:          g.randomAmount(),
		Status:          domain.StatusSuccess,
		TransactionDate: g.randomDate(base),
	}
	if g.rnd.Float64() < g.cfg.FailureRate {
		txn.Status = domain.StatusFailed
		txn.FailureReason = failureReasons[g.rnd.Intn(len(failureReasons))]
	}

	switch category {
	case domain.Internal:
		sender := g.pickAccountID(0)
		receiver := g.pickAccountID(sender)
		txn.SenderAccountID = &sender
		txn.SenderName = g.nameFor(sender)
		txn.ReceiverAccountID = &receiver
		txn.ReceiverName = g.nameFor(receiver)
		txn.ReceiverBankCode = string(domain.KyukyuBank)
		txn.ReceiverAccountNumber = g.accountNumberFor(receiver)

	case domain.External:
		if g.rnd.Intn(2) == 0 {
			// Outgoing: our customer sends to another bank.
			sender := g.pickAccountID(0)
			txn.SenderAccountID = &sender
			txn.SenderName = g.nameFor(sender)
			codes := domain.ExternalBankCodes()
			txn.ReceiverBankCode = string(codes[g.rnd.Intn(len(codes))])
			txn.ReceiverAccountNumber = g.externalAccountNumber()
			txn.ReceiverName = randomName(g.rnd)
		} else {
			// Incoming: another bank's customer sends to ours.
			receiver := g.pickAccountID(0)
			txn.SenderName = randomName(g.rnd)
			txn.ReceiverAccountID = &receiver
			txn.ReceiverName = g.nameFor(receiver)
			txn.ReceiverBankCode = string(domain.KyukyuBank)
			txn.ReceiverAccountNumber = g.accountNumberFor(receiver)
		}

	case domain.DepositTx:
		receiver := g.pickAccountID(0)
		txn.SenderName = atmCounterparty
		txn.ReceiverAccountID = &receiver
		txn.ReceiverName = g.nameFor(receiver)
		txn.ReceiverBankCode = string(domain.KyukyuBank)
		txn.ReceiverAccountNumber = g.accountNumberFor(receiver)

	case domain.Withdrawal:
		sender := g.pickAccountID(0)
		txn.SenderAccountID = &sender
		txn.SenderName = g.nameFor(sender)
		txn.ReceiverName = atmCounterparty
	}

	return txn
}

// pickAccountID draws an account id, never returning exclude (pass 0 to
// allow any). The hot account, when configured, wins at its selection rate;
// otherwise the pareto skew sends 80% of draws to the top 20% of the id
// space.
func (g *Generator) pickAccountID(exclude int64) int64 {
	for {
		id := g.drawAccountID()
		if id != exclude {
			return id
		}
	}
}

func (g *Generator) drawAccountID() int64 {
	if h := g.cfg.HotAccount; h != nil && g.rnd.Float64() < h.SelectionRate {
		return h.AccountID
	}
	max := g.cfg.MaxAccountID
	if g.cfg.ParetoSkew && g.rnd.Float64() < 0.8 {
		top := max / 5
		if top < 1 {
			top = 1
		}
		return max - g.rnd.Int63n(top)
	}
	return 1 + g.rnd.Int63n(max)
}

func (g *Generator) nameFor(accountID int64) string {
	if h := g.cfg.HotAccount; h != nil && h.AccountID == accountID {
		return h.Name
	}
	return randomName(g.rnd)
}

func (g *Generator) accountNumberFor(accountID int64) string {
	if h := g.cfg.HotAccount; h != nil && h.AccountID == accountID {
		return h.AccountNumber
	}
	// Account ids double as sequence numbers; the bound is enforced by
	// config validation, so Generate cannot fail here.
	number, err := accountnumber.Generate(domain.Deposit.Code(), accountID)
	if err != nil {
		panic(fmt.Sprintf("account number generation for id %d: %v", accountID, err))
	}
	return number
}

// externalAccountNumber fabricates a counterparty account number at another
// bank. Other banks use their own numbering schemes, so no check digit
// applies.
func (g *Generator) externalAccountNumber() string {
	var b strings.Builder
	b.WriteByte(byte('1' + g.rnd.Intn(9)))
	for i := 0; i < 11; i++ {
		b.WriteByte(byte('0' + g.rnd.Intn(10)))
	}
	return b.String()
}

func (g *Generator) randomAmount() decimal.Decimal {
	v := g.cfg.MinAmount + g.rnd.Float64()*(g.cfg.MaxAmount-g.cfg.MinAmount)
	return decimal.NewFromFloat(v).Round(2)
}

func (g *Generator) randomDate(base time.Time) time.Time {
	if g.cfg.DateRangeDays <= 0 {
		return base
	}
	span := int64(g.cfg.DateRangeDays) * 24 * 60 * 60
	return base.Add(-time.Duration(g.rnd.Int63n(span)) * time.Second)
}

// touchBalances lazily initializes the starting balance of every customer
// account the transaction references, regardless of its status.
func (g *Generator) touchBalances(txn domain.Transaction) {
	if txn.SenderAccountID != nil {
		g.ensureBalance(*txn.SenderAccountID)
	}
	if txn.ReceiverAccountID != nil {
		g.ensureBalance(*txn.ReceiverAccountID)
	}
}

func (g *Generator) ensureBalance(accountID int64) {
	if _, ok := g.balances[accountID]; ok {
		return
	}
	if h := g.cfg.HotAccount; h != nil && h.AccountID == accountID {
		g.balances[accountID] = h.InitialBalance
		return
	}
	v := g.cfg.MinInitialBalance + g.rnd.Float64()*(g.cfg.MaxInitialBalance-g.cfg.MinInitialBalance)
	g.balances[accountID] = decimal.NewFromFloat(v).Round(2)
}

// balanceAt satisfies accounting.BalanceFunc against the run-scoped cache.
// touchBalances must have run for the transaction first.
func (g *Generator) balanceAt(accountID int64) decimal.Decimal {
	return g.balances[accountID]
}

func (g *Generator) writeTransactionRow(w *bufio.Writer, txn domain.Transaction) error {
	fields := []string{
		strconv.FormatInt(txn.TransactionID, 10),
		string(txn.Category),
		nullableID(txn.SenderAccountID),
		nullable(txn.SenderName),
		nullable(txn.ReceiverBankCode),
		nullable(txn.ReceiverAccountNumber),
		nullableID(txn.ReceiverAccountID),
		nullable(txn.ReceiverName),
		txn.Amount.StringFixed(2),
		string(txn.Status),
		nullable(txn.FailureReason),
		txn.TransactionDate.Format(timestampLayout),
	}
	return writeRow(w, fields)
}

func (g *Generator) writeLedgerRow(w *bufio.Writer, entry domain.LedgerEntry) error {
	fields := []string{
		strconv.FormatInt(entry.LedgerID, 10),
		strconv.FormatInt(entry.TransactionID, 10),
		strconv.FormatInt(entry.AccountID, 10),
		string(entry.EntryType),
		entry.Amount.StringFixed(2),
		entry.BalanceAfter.StringFixed(2),
		nullable(entry.Memo),
		entry.CreatedAt.Format(timestampLayout),
	}
	return writeRow(w, fields)
}

func writeRow(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, "\t")); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func nullable(s string) string {
	if s == "" {
		return nullField
	}
	return s
}

func nullableID(id *int64) string {
	if id == nil {
		return nullField
	}
	return strconv.FormatInt(*id, 10)
}
