package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		AccountRepo:     accountRepo,
		TransactionRepo: newPgxTransactionRepository(dbPool, accountRepo),
		LedgerRepo:      newPgxLedgerRepository(dbPool),
	}
}
