package repositories

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByIDInTx retrieves an account within a transaction so that
	// ownership and status checks see the scope's snapshot.
	FindAccountByIDInTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// ListAccountIDs retrieves the IDs of every account. Used by the
	// reconciliation sweep.
	ListAccountIDs(ctx context.Context) ([]string, error)
}

// AccountWriter defines write operations for account data. Balance is only
// ever mutated through the three atomic primitives below; no other code path
// writes to it.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// ConditionalDebit atomically decrements the balance only if the current
	// balance covers the amount. It returns apperrors.ErrInsufficientFunds
	// (leaving the balance unchanged) when the condition fails. This is the
	// concurrency gate for the whole system.
	ConditionalDebit(ctx context.Context, tx pgx.Tx, accountID string, amount int64) (*domain.Account, error)

	// Credit atomically increments the balance of an active account.
	Credit(ctx context.Context, tx pgx.Tx, accountID string, amount int64) (*domain.Account, error)

	// DebitIssuer atomically decrements the balance of an ISSUER-class
	// account without the non-negative gate. It refuses to run against
	// ordinary accounts.
	DebitIssuer(ctx context.Context, tx pgx.Tx, accountID string, amount int64) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction
// management.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
