// Command tsvgen generates synthetic transaction and ledger TSV files for
// COPY-style bulk loading, without needing a running server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/kyukyubank/banking-service/internal/generator"
)

func main() {
	var (
		count    = flag.Int64("count", 0, "number of transactions to generate (default: generator default)")
		outDir   = flag.String("out", ".", "output directory for the TSV files")
		seed     = flag.Int64("seed", 0, "random seed; 0 means time-based")
		failure  = flag.Float64("failure", -1, "failure rate in [0,1]; negative keeps the default")
		accounts = flag.Int64("accounts", 0, "size of the account id universe (default: generator default)")
		pareto   = flag.Bool("pareto", true, "skew account selection toward the top 20% of ids")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := generator.DefaultConfig()
	cfg.Logger = logger
	cfg.ParetoSkew = *pareto
	if *count > 0 {
		cfg.TotalCount = *count
	}
	if *failure >= 0 {
		cfg.FailureRate = *failure
	}
	if *accounts > 0 {
		cfg.MaxAccountID = *accounts
	}
	if *seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(*seed))
	}

	gen, err := generator.New(cfg)
	if err != nil {
		logger.Error("Invalid generator configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("Failed to create output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	txPath := filepath.Join(*outDir, "transactions.tsv")
	ledgerPath := filepath.Join(*outDir, "ledger_entries.tsv")

	txFile, err := os.Create(txPath)
	if err != nil {
		logger.Error("Failed to create transaction file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer txFile.Close()

	ledgerFile, err := os.Create(ledgerPath)
	if err != nil {
		logger.Error("Failed to create ledger file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer ledgerFile.Close()

	summary, err := gen.Run(txFile, ledgerFile)
	if err != nil {
		logger.Error("Generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("wrote %d transactions to %s and %d ledger entries to %s in %s\n",
		summary.Transactions, txPath, summary.LedgerEntries, ledgerPath,
		summary.Elapsed.Round(time.Millisecond))
}
