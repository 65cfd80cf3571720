package repositories

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerRepositoryFacade defines operations on the append-only ledger.
// There are no update or delete operations: entries are immutable.
type LedgerRepositoryFacade interface {
	// AppendEntry inserts one ledger entry inside a transfer's atomic scope.
	AppendEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// SumByAccount aggregates the full ledger for an account by entry type.
	SumByAccount(ctx context.Context, accountID string) (domain.LedgerTotals, error)

	// ListByAccount retrieves an account's ledger entries, newest first.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error)
}
