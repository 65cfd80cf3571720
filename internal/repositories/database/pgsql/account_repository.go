package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/finvolt/banking-core/internal/core/domain"
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository persists accounts. The three balance primitives are
// single UPDATE statements: the database row lock is the serialization point
// for concurrent transfers contending on one account.
type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, status, class, balance, currency_code, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.UserID,
		&acc.Status,
		&acc.Class,
		&acc.Balance,
		&acc.CurrencyCode,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translatePgError(err)
	}
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, user_id, status, class, balance, currency_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.Status,
		account.Class,
		account.Balance,
		account.CurrencyCode,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, translatePgError(err))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

// FindAccountByIDInTx retrieves an account inside the given transaction.
func (r *PgxAccountRepository) FindAccountByIDInTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(tx.QueryRow(ctx, query, accountID))
}

// ListAccountsByUser retrieves all accounts owned by a user.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, translatePgError(err))
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return accounts, nil
}

// ListAccountIDs retrieves every account ID.
func (r *PgxAccountRepository) ListAccountIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_id FROM accounts ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list account ids: %w", translatePgError(err))
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translatePgError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}
	return ids, nil
}

// ConditionalDebit decrements the balance only when it covers the amount.
// The balance >= amount predicate and the decrement are one statement, so two
// concurrent debits can never jointly push the balance below zero.
func (r *PgxAccountRepository) ConditionalDebit(ctx context.Context, tx pgx.Tx, accountID string, amount int64) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = now()
		WHERE account_id = $1 AND class = 'ORDINARY' AND balance >= $2
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(tx.QueryRow(ctx, query, accountID, amount))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Condition failed: the row exists but does not cover the amount.
			return nil, apperrors.ErrInsufficientFunds
		}
		return nil, err
	}
	return acc, nil
}

// Credit increments the balance of an active account.
func (r *PgxAccountRepository) Credit(ctx context.Context, tx pgx.Tx, accountID string, amount int64) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = now()
		WHERE account_id = $1 AND status = 'ACTIVE'
		RETURNING ` + accountColumns + `;
	`
	return scanAccount(tx.QueryRow(ctx, query, accountID, amount))
}

// DebitIssuer decrements an issuer account unconditionally. The class
// predicate keeps the unlimited-issuance contract off the ordinary debit path
// entirely: an ordinary account can never be debited through here.
func (r *PgxAccountRepository) DebitIssuer(ctx context.Context, tx pgx.Tx, accountID string, amount int64) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = now()
		WHERE account_id = $1 AND class = 'ISSUER'
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(tx.QueryRow(ctx, query, accountID, amount))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("account %s is not an issuer account: %w", accountID, apperrors.ErrForbidden)
		}
		return nil, err
	}
	return acc, nil
}
