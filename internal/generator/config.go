package generator

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/utils/accountnumber"
	"github.com/shopspring/decimal"
)

// distEpsilon absorbs float accumulation noise when checking that category
// probabilities do not exceed 1.
const distEpsilon = 1e-9

// defaultCategory receives whatever probability mass the configured
// distribution leaves unassigned.
const defaultCategory = domain.Internal

// HotAccount pins one account with a fixed identity, a fixed starting
// balance and an elevated selection probability, for demos and tests that
// need a known-busy account.
type HotAccount struct {
	AccountID      int64
	Name           string
	AccountNumber  string
	InitialBalance decimal.Decimal
	SelectionRate  float64
}

// Config drives one generator run. Zero values for Rand, Logger and
// ProgressEvery get sensible defaults in New; everything else is validated
// before any I/O happens.
type Config struct {
	// TotalCount is the number of transaction records to emit.
	TotalCount int64
	// CategoryDist maps each transfer category to its selection probability.
	// The probabilities must sum to at most 1.0; the remainder falls to the
	// INTERNAL default category.
	CategoryDist map[domain.TransferCategory]float64
	// FailureRate is the probability a transaction is marked FAILED.
	FailureRate float64
	// Amount bounds for the uniform draw, rounded to 2 decimals half-up.
	MinAmount float64
	MaxAmount float64
	// Initial balance bounds for accounts seen for the first time.
	MinInitialBalance float64
	MaxInitialBalance float64
	// MaxAccountID is the size of the account id universe [1, MaxAccountID].
	MaxAccountID int64
	// HotAccount, when set, overrides identity and selection for one account.
	HotAccount *HotAccount
	// ParetoSkew draws accounts from the top 20% of the id space 80% of the
	// time, mimicking real usage concentration.
	ParetoSkew bool
	// ProgressEvery is the row interval between progress log lines.
	ProgressEvery int64
	// DateRangeDays spreads transaction dates over the past N days.
	DateRangeDays int
	// BaseTime anchors the generated dates and group IDs; dates fall in the
	// DateRangeDays before it. Defaults to time.Now(), so runs that need
	// byte-identical output must pin it together with Rand.
	BaseTime time.Time
	// Rand is the random source for the run; inject a seeded source for
	// deterministic output. Defaults to a time-seeded source.
	Rand *rand.Rand
	// Logger receives progress reports. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig mirrors the demo dataset parameters: two million mostly
// internal transactions across a hundred thousand accounts with a 3% failure
// rate and a pinned test account.
func DefaultConfig() Config {
	return Config{
		TotalCount: 2_000_000,
		CategoryDist: map[domain.TransferCategory]float64{
			domain.Internal: 0.6,
			domain.External: 0.4,
		},
		FailureRate:       0.03,
		MinAmount:         100,
		MaxAmount:         1_000_000,
		MinInitialBalance: 100_000,
		MaxInitialBalance: 10_000_000,
		MaxAccountID:      100_000,
		HotAccount: &HotAccount{
			AccountID:      1,
			Name:           "Chihuahua",
			AccountNumber:  "100000000013",
			InitialBalance: decimal.NewFromInt(100_000),
			SelectionRate:  0.05,
		},
		ParetoSkew:    true,
		ProgressEvery: 100_000,
		DateRangeDays: 365,
	}
}

func (c Config) validate() error {
	if c.TotalCount <= 0 {
		return fmt.Errorf("%w: total count must be positive, got %d", apperrors.ErrConfiguration, c.TotalCount)
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("%w: failure rate must be within [0,1], got %g", apperrors.ErrConfiguration, c.FailureRate)
	}
	if c.MinAmount <= 0 || c.MaxAmount < c.MinAmount {
		return fmt.Errorf("%w: amount range [%g,%g] is invalid", apperrors.ErrConfiguration, c.MinAmount, c.MaxAmount)
	}
	if c.MinInitialBalance < 0 || c.MaxInitialBalance < c.MinInitialBalance {
		return fmt.Errorf("%w: initial balance range [%g,%g] is invalid", apperrors.ErrConfiguration, c.MinInitialBalance, c.MaxInitialBalance)
	}
	// At least two accounts are needed for distinct counterparties, and ids
	// double as account number sequence numbers.
	if c.MaxAccountID < 2 || c.MaxAccountID > accountnumber.MaxSequenceNumber {
		return fmt.Errorf("%w: account universe size must be within [2,%d], got %d",
			apperrors.ErrConfiguration, accountnumber.MaxSequenceNumber, c.MaxAccountID)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval must not be negative, got %d", apperrors.ErrConfiguration, c.ProgressEvery)
	}
	if c.DateRangeDays < 0 {
		return fmt.Errorf("%w: date range days must not be negative, got %d", apperrors.ErrConfiguration, c.DateRangeDays)
	}

	sum := 0.0
	for cat, p := range c.CategoryDist {
		switch cat {
		case domain.Internal, domain.External, domain.DepositTx, domain.Withdrawal:
		default:
			return fmt.Errorf("%w: unknown transfer category %q in distribution", apperrors.ErrConfiguration, cat)
		}
		if p < 0 {
			return fmt.Errorf("%w: probability for %s must not be negative, got %g", apperrors.ErrConfiguration, cat, p)
		}
		sum += p
	}
	if sum > 1+distEpsilon {
		return fmt.Errorf("%w: category probabilities sum to %g, must not exceed 1", apperrors.ErrConfiguration, sum)
	}

	if h := c.HotAccount; h != nil {
		if h.AccountID < 1 || h.AccountID > c.MaxAccountID {
			return fmt.Errorf("%w: hot account id %d outside the account universe", apperrors.ErrConfiguration, h.AccountID)
		}
		// A rate of 1.0 would make distinct-counterparty resampling spin forever.
		if h.SelectionRate < 0 || h.SelectionRate >= 1 {
			return fmt.Errorf("%w: hot account selection rate must be within [0,1), got %g", apperrors.ErrConfiguration, h.SelectionRate)
		}
		if h.InitialBalance.IsNegative() {
			return fmt.Errorf("%w: hot account initial balance must not be negative", apperrors.ErrConfiguration)
		}
	}
	return nil
}
