package services

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/dto"
)

// MockDataSvcFacade defines the synthetic bulk-data generation operation
// exposed on the internal API surface.
type MockDataSvcFacade interface {
	// GenerateMockData runs the TSV generator with the requested parameters
	// and reports the produced row counts, elapsed time and output files.
	GenerateMockData(ctx context.Context, req dto.GenerateMockDataRequest) (*dto.GenerateMockDataResponse, error)
}
