package services

import (
	"context"
	"fmt"

	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/dto"
)

type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates the ledger read service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

func (s *ledgerService) ListEntries(ctx context.Context, userID int64, accountID int64, params dto.ListLedgerParams) ([]domain.LedgerEntry, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", accountID, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %d does not belong to user %d", apperrors.ErrUnauthorized, accountID, userID)
	}

	// One extra row is fetched so the response can report whether more exist.
	entries, err := s.ledgerRepo.ListEntriesByAccountID(ctx, accountID, params.Limit+1, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for account %d: %w", accountID, err)
	}
	return entries, nil
}
