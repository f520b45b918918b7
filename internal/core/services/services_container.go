package services

import (
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:     NewUserService(repos.UserRepo, cfg),
		Account:  NewAccountService(repos.AccountRepo, repos.TransactionRepo),
		Transfer: NewTransferService(repos.AccountRepo, repos.TransactionRepo, repos.UserRepo),
		Ledger:   NewLedgerService(repos.LedgerRepo, repos.AccountRepo),
		MockData: NewMockDataService(cfg),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.UserSvcFacade     = (*userService)(nil)
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.TransferSvcFacade = (*transferService)(nil)
	_ portssvc.LedgerSvcFacade   = (*ledgerService)(nil)
	_ portssvc.MockDataSvcFacade = (*mockDataService)(nil)
)
