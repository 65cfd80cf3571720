package pgsql

import (
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:     NewPgxAccountRepository(pool),
		TransactionRepo: NewPgxTransactionRepository(pool),
		LedgerRepo:      NewPgxLedgerRepository(pool),
		UserRepo:        NewPgxUserRepository(pool),
	}
}
