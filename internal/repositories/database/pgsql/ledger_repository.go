package pgsql

import (
	"context"
	"fmt"

	"github.com/finvolt/banking-core/internal/core/domain"
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository persists the append-only ledger. Only INSERT and SELECT
// exist here; entries are immutable once written.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewPgxLedgerRepository creates a new repository for ledger entries.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// AppendEntry inserts one ledger entry inside the transfer's atomic scope.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (entry_id, account_id, transaction_id, type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.AccountID,
		entry.TransactionID,
		entry.Type,
		entry.Amount,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry for account %s: %w", entry.AccountID, translatePgError(err))
	}
	return nil
}

// SumByAccount aggregates the account's full ledger by entry type.
func (r *PgxLedgerRepository) SumByAccount(ctx context.Context, accountID string) (domain.LedgerTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'DEBIT' THEN amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN type = 'CREDIT' THEN amount ELSE 0 END), 0) AS total_credit
		FROM ledger_entries
		WHERE account_id = $1;
	`
	var totals domain.LedgerTotals
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&totals.TotalDebit, &totals.TotalCredit); err != nil {
		return domain.LedgerTotals{}, fmt.Errorf("failed to sum ledger for account %s: %w", accountID, translatePgError(err))
	}
	return totals, nil
}

// ListByAccount retrieves an account's ledger entries, newest first.
func (r *PgxLedgerRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, account_id, transaction_id, type, amount, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger for account %s: %w", accountID, translatePgError(err))
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.EntryID, &e.AccountID, &e.TransactionID, &e.Type, &e.Amount, &e.CreatedAt); err != nil {
			return nil, translatePgError(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return entries, nil
}
