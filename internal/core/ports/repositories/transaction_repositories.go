package repositories

import (
	"context"
	"time"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for transfer records.
type TransactionReader interface {
	// FindByIdempotencyKey retrieves the transaction created under the given
	// idempotency key, or apperrors.ErrNotFound when the key is novel.
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transfer records.
type TransactionWriter interface {
	// CreatePending inserts a new PENDING transaction. The unique constraint
	// on the idempotency key is the ultimate arbiter between concurrent
	// requests: the loser receives apperrors.ErrDuplicate and must fall back
	// to the lookup path.
	CreatePending(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// MarkCompleted transitions a PENDING transaction to COMPLETED. The
	// transition is guarded in SQL so a terminal status is never overwritten.
	MarkCompleted(ctx context.Context, tx pgx.Tx, transactionID string, now time.Time) (*domain.Transaction, error)

	// MarkFailed transitions a PENDING transaction to FAILED, outside any
	// scope. Best-effort: used when a commit failed after the pending record
	// became visible.
	MarkFailed(ctx context.Context, transactionID string, now time.Time) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines transfer-record repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
