package services

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/dto"
	"github.com/kyukyubank/banking-service/internal/generator"
	"github.com/kyukyubank/banking-service/pkg/config"
)

type mockDataService struct {
	BaseService
	cfg *config.Config
}

// NewMockDataService creates the synthetic-data service.
func NewMockDataService(cfg *config.Config) portssvc.MockDataSvcFacade {
	return &mockDataService{cfg: cfg}
}

func (s *mockDataService) GenerateMockData(ctx context.Context, req dto.GenerateMockDataRequest) (*dto.GenerateMockDataResponse, error) {
	genCfg := generator.DefaultConfig()
	genCfg.TotalCount = req.TotalCount
	genCfg.Logger = s.GetLogger(ctx)
	if req.FailureRate > 0 {
		genCfg.FailureRate = req.FailureRate
	}
	if req.MaxAccountID > 0 {
		genCfg.MaxAccountID = req.MaxAccountID
	}
	if req.Seed != nil {
		genCfg.Rand = rand.New(rand.NewSource(*req.Seed))
	}

	gen, err := generator.New(genCfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.cfg.MockDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create mock data directory: %w", err)
	}

	stamp := time.Now().Format("20060102T150405")
	txPath := filepath.Join(s.cfg.MockDataDir, fmt.Sprintf("transactions_%s.tsv", stamp))
	ledgerPath := filepath.Join(s.cfg.MockDataDir, fmt.Sprintf("ledger_entries_%s.tsv", stamp))

	txFile, err := os.Create(txPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction file: %w", err)
	}
	defer txFile.Close()

	ledgerFile, err := os.Create(ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger file: %w", err)
	}
	defer ledgerFile.Close()

	summary, err := gen.Run(txFile, ledgerFile)
	if err != nil {
		s.LogError(ctx, err, "Mock data generation failed")
		return nil, fmt.Errorf("mock data generation failed: %w", err)
	}

	return &dto.GenerateMockDataResponse{
		Transactions:    summary.Transactions,
		LedgerEntries:   summary.LedgerEntries,
		Succeeded:       summary.Succeeded,
		Failed:          summary.Failed,
		ElapsedMillis:   summary.Elapsed.Milliseconds(),
		TransactionFile: txPath,
		LedgerFile:      ledgerPath,
	}, nil
}
