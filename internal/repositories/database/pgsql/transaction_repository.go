package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/finvolt/banking-core/internal/core/domain"
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository persists transfer records.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new repository for transfer records.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, from_account_id, to_account_id, amount, idempotency_key, status, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.FromAccountID,
		&txn.ToAccountID,
		&txn.Amount,
		&txn.IdempotencyKey,
		&txn.Status,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	return &txn, nil
}

// FindByIdempotencyKey retrieves the transaction created under the key.
func (r *PgxTransactionRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE idempotency_key = $1;`
	return scanTransaction(r.Pool.QueryRow(ctx, query, key))
}

// CreatePending inserts a new PENDING transaction inside the atomic scope.
// The unique index on idempotency_key makes the insert the arbiter between
// concurrent submissions of the same key.
func (r *PgxTransactionRepository) CreatePending(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.FromAccountID,
		txn.ToAccountID,
		txn.Amount,
		txn.IdempotencyKey,
		domain.TransactionPending,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pending transaction %s: %w", txn.TransactionID, translatePgError(err))
	}
	return nil
}

// MarkCompleted transitions PENDING -> COMPLETED. The status predicate keeps
// the transition monotonic: a terminal record is never rewritten.
func (r *PgxTransactionRepository) MarkCompleted(ctx context.Context, tx pgx.Tx, transactionID string, now time.Time) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2, updated_at = $3
		WHERE transaction_id = $1 AND status = $4
		RETURNING ` + transactionColumns + `;
	`
	txn, err := scanTransaction(tx.QueryRow(ctx, query, transactionID, domain.TransactionCompleted, now, domain.TransactionPending))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("transaction %s is not pending: %w", transactionID, apperrors.ErrValidation)
		}
		return nil, err
	}
	return txn, nil
}

// MarkFailed transitions PENDING -> FAILED outside any scope. Best-effort
// cleanup after an ambiguous commit.
func (r *PgxTransactionRepository) MarkFailed(ctx context.Context, transactionID string, now time.Time) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2, updated_at = $3
		WHERE transaction_id = $1 AND status = $4
		RETURNING ` + transactionColumns + `;
	`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, domain.TransactionFailed, now, domain.TransactionPending))
}
