package generator

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/utils/accountnumber"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	txColumns     = 12
	ledgerColumns = 8
)

func testConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.TotalCount = 1_000
	cfg.MaxAccountID = 200
	cfg.ProgressEvery = 0
	cfg.Rand = rand.New(rand.NewSource(seed))
	cfg.BaseTime = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func runGenerator(t *testing.T, cfg Config) (Summary, []string, []string) {
	t.Helper()
	g, err := New(cfg)
	require.NoError(t, err)

	var txBuf, ledgerBuf bytes.Buffer
	sum, err := g.Run(&txBuf, &ledgerBuf)
	require.NoError(t, err)

	return sum, splitRows(t, txBuf.String()), splitRows(t, ledgerBuf.String())
}

func splitRows(t *testing.T, s string) []string {
	t.Helper()
	if s == "" {
		return nil
	}
	require.True(t, strings.HasSuffix(s, "\n"), "output must end with a newline")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero total count", func(c *Config) { c.TotalCount = 0 }},
		{"negative failure rate", func(c *Config) { c.FailureRate = -0.1 }},
		{"failure rate above one", func(c *Config) { c.FailureRate = 1.5 }},
		{"zero min amount", func(c *Config) { c.MinAmount = 0 }},
		{"inverted amount range", func(c *Config) { c.MinAmount = 500; c.MaxAmount = 100 }},
		{"inverted balance range", func(c *Config) { c.MinInitialBalance = 100; c.MaxInitialBalance = 10 }},
		{"single account universe", func(c *Config) { c.MaxAccountID = 1 }},
		{"universe beyond sequence space", func(c *Config) { c.MaxAccountID = 100_000_000 }},
		{"distribution above one", func(c *Config) {
			c.CategoryDist = map[domain.TransferCategory]float64{domain.Internal: 0.7, domain.External: 0.7}
		}},
		{"negative category weight", func(c *Config) {
			c.CategoryDist = map[domain.TransferCategory]float64{domain.Internal: -0.2}
		}},
		{"unknown category", func(c *Config) {
			c.CategoryDist = map[domain.TransferCategory]float64{"WIRE": 0.5}
		}},
		{"hot account outside universe", func(c *Config) { c.HotAccount.AccountID = c.MaxAccountID + 1 }},
		{"hot selection rate of one", func(c *Config) { c.HotAccount.SelectionRate = 1 }},
		{"negative hot balance", func(c *Config) { c.HotAccount.InitialBalance = decimal.NewFromInt(-1) }},
		{"negative progress interval", func(c *Config) { c.ProgressEvery = -1 }},
		{"negative date range", func(c *Config) { c.DateRangeDays = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(1)
			tc.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	_, err := New(DefaultConfig())
	assert.NoError(t, err)
}

func TestRunRowCounts(t *testing.T) {
	cfg := testConfig(42)
	cfg.CategoryDist = map[domain.TransferCategory]float64{domain.Internal: 1.0}

	sum, txRows, ledgerRows := runGenerator(t, cfg)

	assert.EqualValues(t, cfg.TotalCount, sum.Transactions)
	assert.Len(t, txRows, int(cfg.TotalCount))
	assert.Equal(t, sum.Transactions, sum.Succeeded+sum.Failed)

	// Internal transfers decompose into exactly two entries on SUCCESS and
	// none otherwise.
	assert.EqualValues(t, 2*sum.Succeeded, sum.LedgerEntries)
	assert.Len(t, ledgerRows, int(sum.LedgerEntries))

	for _, row := range txRows {
		assert.Len(t, strings.Split(row, "\t"), txColumns)
	}
	for _, row := range ledgerRows {
		assert.Len(t, strings.Split(row, "\t"), ledgerColumns)
	}
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	run := func() (string, string) {
		g, err := New(testConfig(7))
		require.NoError(t, err)
		var txBuf, ledgerBuf bytes.Buffer
		_, err = g.Run(&txBuf, &ledgerBuf)
		require.NoError(t, err)
		return txBuf.String(), ledgerBuf.String()
	}

	tx1, ledger1 := run()
	tx2, ledger2 := run()
	assert.Equal(t, tx1, tx2)
	assert.Equal(t, ledger1, ledger2)
}

func TestRunAnchorsDatesToBaseTime(t *testing.T) {
	cfg := testConfig(7)
	cfg.DateRangeDays = 30

	_, txRows, _ := runGenerator(t, cfg)

	earliest := cfg.BaseTime.AddDate(0, 0, -cfg.DateRangeDays)
	for _, row := range txRows {
		f := strings.Split(row, "\t")
		ts, err := time.Parse("2006-01-02 15:04:05", f[11])
		require.NoError(t, err)
		assert.False(t, ts.After(cfg.BaseTime), "date %s must not pass the anchor", f[11])
		assert.False(t, ts.Before(earliest), "date %s must fall within the range", f[11])
	}
}

func TestInternalTransfersBalanceDebitsAndCredits(t *testing.T) {
	cfg := testConfig(99)
	cfg.CategoryDist = map[domain.TransferCategory]float64{domain.Internal: 1.0}

	_, txRows, ledgerRows := runGenerator(t, cfg)

	entriesByTx := make(map[string][][]string)
	for _, row := range ledgerRows {
		f := strings.Split(row, "\t")
		entriesByTx[f[1]] = append(entriesByTx[f[1]], f)
	}

	for _, row := range txRows {
		f := strings.Split(row, "\t")
		txID, status, amount := f[0], f[9], f[8]
		entries := entriesByTx[txID]

		if status != string(domain.StatusSuccess) {
			assert.Empty(t, entries, "non-success transaction %s must not produce ledger rows", txID)
			assert.NotEqual(t, nullField, f[10], "failed transaction %s must carry a reason", txID)
			continue
		}

		require.Len(t, entries, 2, "internal transfer %s must produce a debit and a credit", txID)
		assert.Equal(t, string(domain.DebitEntry), entries[0][3])
		assert.Equal(t, string(domain.CreditEntry), entries[1][3])
		assert.Equal(t, amount, entries[0][4])
		assert.Equal(t, amount, entries[1][4])
		assert.NotEqual(t, entries[0][2], entries[1][2], "sender and receiver of %s must differ", txID)
	}
}

func TestBalanceAfterChainsPerAccount(t *testing.T) {
	cfg := testConfig(1234)
	cfg.CategoryDist = map[domain.TransferCategory]float64{
		domain.Internal:   0.5,
		domain.External:   0.2,
		domain.DepositTx:  0.15,
		domain.Withdrawal: 0.15,
	}

	_, _, ledgerRows := runGenerator(t, cfg)
	require.NotEmpty(t, ledgerRows)

	lastBalance := make(map[string]decimal.Decimal)
	for _, row := range ledgerRows {
		f := strings.Split(row, "\t")
		accountID, entryType := f[2], f[3]
		amount, err := decimal.NewFromString(f[4])
		require.NoError(t, err)
		after, err := decimal.NewFromString(f[5])
		require.NoError(t, err)

		if prev, seen := lastBalance[accountID]; seen {
			expected := prev.Add(amount)
			if entryType == string(domain.DebitEntry) {
				expected = prev.Sub(amount)
			}
			assert.True(t, expected.Equal(after),
				"account %s: expected balance %s after %s of %s, got %s",
				accountID, expected, entryType, amount, after)
		}
		lastBalance[accountID] = after
	}
}

func TestExternalTransfersHaveExactlyOneCustomerSide(t *testing.T) {
	cfg := testConfig(5)
	cfg.CategoryDist = map[domain.TransferCategory]float64{domain.External: 1.0}

	sum, txRows, ledgerRows := runGenerator(t, cfg)

	assert.EqualValues(t, sum.Succeeded, sum.LedgerEntries)
	assert.Len(t, ledgerRows, int(sum.Succeeded))

	entriesByTx := make(map[string][][]string)
	for _, row := range ledgerRows {
		f := strings.Split(row, "\t")
		entriesByTx[f[1]] = append(entriesByTx[f[1]], f)
	}

	for _, row := range txRows {
		f := strings.Split(row, "\t")
		txID, amount, status := f[0], f[8], f[9]
		senderSet := f[2] != nullField
		receiverSet := f[6] != nullField
		assert.NotEqual(t, senderSet, receiverSet,
			"external transfer %s must have exactly one customer side", f[0])

		if receiverSet {
			assert.Equal(t, string(domain.KyukyuBank), f[4])
		} else {
			assert.Contains(t, domainBankCodes(), f[4])
		}

		if status != string(domain.StatusSuccess) {
			assert.Empty(t, entriesByTx[txID])
			continue
		}
		entries := entriesByTx[txID]
		require.Len(t, entries, 1, "external transfer %s must produce one ledger row", txID)
		assert.Equal(t, amount, entries[0][4],
			"ledger row of %s must carry the transaction amount", txID)
		if receiverSet {
			assert.Equal(t, string(domain.CreditEntry), entries[0][3])
		} else {
			assert.Equal(t, string(domain.DebitEntry), entries[0][3])
		}
	}
}

func domainBankCodes() []string {
	codes := make([]string, 0, len(domain.ExternalBankCodes()))
	for _, c := range domain.ExternalBankCodes() {
		codes = append(codes, string(c))
	}
	return codes
}

func TestDepositAndWithdrawalEntryTypes(t *testing.T) {
	tests := []struct {
		name      string
		category  domain.TransferCategory
		entryType domain.EntryType
	}{
		{"deposit credits the receiver", domain.DepositTx, domain.CreditEntry},
		{"withdrawal debits the sender", domain.Withdrawal, domain.DebitEntry},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(11)
			cfg.TotalCount = 200
			cfg.CategoryDist = map[domain.TransferCategory]float64{tc.category: 1.0}

			sum, txRows, ledgerRows := runGenerator(t, cfg)
			assert.EqualValues(t, sum.Succeeded, len(ledgerRows))

			for _, row := range ledgerRows {
				f := strings.Split(row, "\t")
				assert.Equal(t, string(tc.entryType), f[3])
			}
			for _, row := range txRows {
				f := strings.Split(row, "\t")
				if tc.category == domain.DepositTx {
					assert.Equal(t, atmCounterparty, f[3])
					assert.NotEqual(t, nullField, f[6])
				} else {
					assert.Equal(t, atmCounterparty, f[7])
					assert.NotEqual(t, nullField, f[2])
				}
			}
		})
	}
}

func TestHotAccountKeepsFixedIdentity(t *testing.T) {
	cfg := testConfig(21)
	cfg.CategoryDist = map[domain.TransferCategory]float64{domain.Internal: 1.0}
	cfg.HotAccount.SelectionRate = 0.5

	_, txRows, _ := runGenerator(t, cfg)

	hotID := strconv.FormatInt(cfg.HotAccount.AccountID, 10)
	seen := 0
	for _, row := range txRows {
		f := strings.Split(row, "\t")
		if f[2] == hotID {
			seen++
			assert.Equal(t, cfg.HotAccount.Name, f[3])
		}
		if f[6] == hotID {
			seen++
			assert.Equal(t, cfg.HotAccount.Name, f[7])
			assert.Equal(t, cfg.HotAccount.AccountNumber, f[5])
		}
	}
	assert.NotZero(t, seen, "a 50%% selection rate must surface the hot account")
}

func TestGeneratedAccountNumbersCarryValidCheckDigits(t *testing.T) {
	cfg := testConfig(3)
	cfg.TotalCount = 300
	cfg.CategoryDist = map[domain.TransferCategory]float64{domain.Internal: 1.0}

	_, txRows, _ := runGenerator(t, cfg)

	for _, row := range txRows {
		f := strings.Split(row, "\t")
		number := f[5]
		require.Len(t, number, 12)
		assert.True(t, accountnumber.Validate(number), "account number %s fails check-digit validation", number)
	}
}
