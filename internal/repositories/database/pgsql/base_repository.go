package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction at repeatable-read so every read in
// the scope sees one snapshot.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", translatePgError(err))
	}
	return tx, nil
}

// Commit commits a transaction. Serialization failures on commit are
// translated to the transient class so the caller's retry loop picks them up.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", translatePgError(err))
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back after a successful commit
// is ignored.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// translatePgError maps low-level postgres errors onto the apperrors
// taxonomy. 40001/40P01 are the write-conflict class the orchestrator retries;
// 23505 is the unique-violation the idempotency gate falls back on.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return errors.Join(apperrors.ErrTransient, err)
		case "23505":
			return errors.Join(apperrors.ErrDuplicate, err)
		}
	}
	if pgconn.SafeToRetry(err) {
		return errors.Join(apperrors.ErrTransient, err)
	}
	return err
}
