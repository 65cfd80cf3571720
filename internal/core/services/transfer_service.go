package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/finvolt/banking-core/internal/core/domain"
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/dto"
	"github.com/finvolt/banking-core/internal/middleware"
	"github.com/finvolt/banking-core/internal/utils/retry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransferConfig carries the orchestrator's knobs.
type TransferConfig struct {
	// SystemAccountID is the issuer account debited by system issuance.
	SystemAccountID string
	// MaxRetries bounds the internal retry loop for transient store errors.
	MaxRetries int
	// RetryBackoff is the base backoff; waits grow linearly per attempt.
	RetryBackoff time.Duration
}

// transferService drives a transfer through validation, the atomic
// debit/credit sequence, ledger recording and bounded retry. All steps of one
// attempt run inside a single database transaction; the only serialization
// point between concurrent callers is the store's conditional debit.
type transferService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	notifier    portssvc.Notifier
	cfg         TransferConfig
}

// NewTransferService creates the transaction orchestrator.
func NewTransferService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	notifier portssvc.Notifier,
	cfg TransferConfig,
) portssvc.TransferSvcFacade {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 50 * time.Millisecond
	}
	return &transferService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		ledgerRepo:  ledgerRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// SubmitTransfer implements the transfer flow:
//  1. idempotency lookup, short-circuit on hit
//  2. execute the atomic scope (ownership, debit, credit, record, ledger)
//     under bounded retry for transient write conflicts
//  3. post-commit best-effort notification, outside the atomic scope
func (s *transferService) SubmitTransfer(ctx context.Context, principal domain.Principal, req dto.CreateTransferRequest) (*dto.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("idempotency_key", req.IdempotencyKey))

	if res, err := s.resolveIdempotency(ctx, req.IdempotencyKey); res != nil || err != nil {
		return res, err
	}

	var (
		completed   *domain.Transaction
		debitedFrom *domain.Account
	)
	execute := func(ctx context.Context) error {
		txn, from, err := s.executeTransfer(ctx, principal, req)
		if err != nil {
			return err
		}
		completed, debitedFrom = txn, from
		return nil
	}

	policy := retry.Policy{MaxAttempts: s.cfg.MaxRetries, Backoff: s.cfg.RetryBackoff}
	if err := retry.Do(ctx, policy, apperrors.IsTransient, execute); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the insert race on the idempotency key: the winner's
			// record answers this request.
			logger.Info("Idempotency key conflict on insert, falling back to lookup")
			if res, lerr := s.resolveIdempotency(ctx, req.IdempotencyKey); res != nil || lerr != nil {
				return res, lerr
			}
			return nil, apperrors.ErrEngineFailure
		}
		if apperrors.IsTransient(err) {
			logger.Error("Transfer retry budget exhausted", slog.String("error", err.Error()))
			return nil, errors.Join(apperrors.ErrEngineFailure, err)
		}
		return nil, err
	}

	logger.Info("Transfer completed",
		slog.String("transaction_id", completed.TransactionID),
		slog.Int64("amount", completed.Amount),
	)
	s.notifier.NotifyTransferSuccess(context.WithoutCancel(ctx), principal.UserID, completed.Amount, debitedFrom.CurrencyCode, completed.ToAccountID)

	return &dto.TransferResult{Outcome: dto.OutcomeCreated, Transaction: completed}, nil
}

// resolveIdempotency applies the registry policy. A nil, nil return means the
// key is novel and the transfer should execute.
func (s *transferService) resolveIdempotency(ctx context.Context, key string) (*dto.TransferResult, error) {
	existing, err := s.txnRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	switch existing.Status {
	case domain.TransactionCompleted:
		return &dto.TransferResult{Outcome: dto.OutcomeAlreadyProcessed, Transaction: existing}, nil
	case domain.TransactionPending:
		return &dto.TransferResult{Outcome: dto.OutcomeInProgress, Transaction: existing}, nil
	default:
		// FAILED or REVERSED: a terminal non-success outcome is never
		// silently retried under the same key.
		return &dto.TransferResult{Outcome: dto.OutcomeConflictReuse, Transaction: existing}, nil
	}
}

// executeTransfer runs one transfer attempt as a single all-or-nothing scope.
// Any error aborts the whole scope: balances and ledger stay untouched.
func (s *transferService) executeTransfer(ctx context.Context, principal domain.Principal, req dto.CreateTransferRequest) (*domain.Transaction, *domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	// Ownership and status are verified inside the scope so they cannot
	// change mid-flight.
	from, err := s.accountRepo.FindAccountByIDInTx(ctx, tx, req.FromAccount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("invalid source account or insufficient permissions: %w", apperrors.ErrForbidden)
		}
		return nil, nil, err
	}
	if from.UserID != principal.UserID || !from.IsActive() {
		return nil, nil, fmt.Errorf("invalid source account or insufficient permissions: %w", apperrors.ErrForbidden)
	}

	to, err := s.accountRepo.FindAccountByIDInTx(ctx, tx, req.ToAccount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("invalid destination account: %w", apperrors.ErrNotFound)
		}
		return nil, nil, err
	}
	if !to.IsActive() {
		return nil, nil, fmt.Errorf("invalid destination account: %w", apperrors.ErrAccountInactive)
	}
	if from.CurrencyCode != to.CurrencyCode {
		return nil, nil, fmt.Errorf("accounts use different currencies: %w", apperrors.ErrValidation)
	}

	// The concurrency gate. from.Balance is the last-observed value used for
	// diagnostics; the gate itself re-checks atomically.
	updatedFrom, err := s.accountRepo.ConditionalDebit(ctx, tx, req.FromAccount, req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			return nil, nil, &apperrors.InsufficientFundsError{CurrentBalance: from.Balance}
		}
		return nil, nil, err
	}

	if _, err := s.accountRepo.Credit(ctx, tx, req.ToAccount, req.Amount); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("invalid destination account: %w", apperrors.ErrAccountInactive)
		}
		return nil, nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		FromAccountID:  req.FromAccount,
		ToAccountID:    req.ToAccount,
		Amount:         req.Amount,
		IdempotencyKey: req.IdempotencyKey,
		Status:         domain.TransactionPending,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.txnRepo.CreatePending(ctx, tx, txn); err != nil {
		return nil, nil, err
	}

	if err := s.appendDoubleEntry(ctx, tx, txn, now); err != nil {
		return nil, nil, err
	}

	completed, err := s.txnRepo.MarkCompleted(ctx, tx, txn.TransactionID, now)
	if err != nil {
		return nil, nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return completed, updatedFrom, nil
}

// appendDoubleEntry writes the two ledger legs: one debit on the source, one
// credit on the destination, equal amounts, both referencing the transaction.
func (s *transferService) appendDoubleEntry(ctx context.Context, tx pgx.Tx, txn domain.Transaction, now time.Time) error {
	debit := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		AccountID:     txn.FromAccountID,
		TransactionID: txn.TransactionID,
		Type:          domain.Debit,
		Amount:        txn.Amount,
		CreatedAt:     now,
	}
	if err := s.ledgerRepo.AppendEntry(ctx, tx, debit); err != nil {
		return err
	}

	credit := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		AccountID:     txn.ToAccountID,
		TransactionID: txn.TransactionID,
		Type:          domain.Credit,
		Amount:        txn.Amount,
		CreatedAt:     now,
	}
	return s.ledgerRepo.AppendEntry(ctx, tx, credit)
}

// SubmitSystemIssuance seeds funds: credits the target and debits the
// designated issuer account without the non-negative gate. Privileged
// principals only; no ownership verification against an arbitrary principal.
func (s *transferService) SubmitSystemIssuance(ctx context.Context, principal domain.Principal, req dto.CreateIssuanceRequest) (*dto.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("idempotency_key", req.IdempotencyKey))

	if !principal.IsSystem() {
		return nil, fmt.Errorf("system issuance requires a privileged principal: %w", apperrors.ErrForbidden)
	}
	if s.cfg.SystemAccountID == "" {
		return nil, apperrors.NewAppError(500, "system account not configured", nil)
	}

	if res, err := s.resolveIdempotency(ctx, req.IdempotencyKey); res != nil || err != nil {
		return res, err
	}

	var (
		completed *domain.Transaction
		pendingID string
	)
	execute := func(ctx context.Context) error {
		txn, err := s.executeIssuance(ctx, req, &pendingID)
		if err != nil {
			return err
		}
		completed = txn
		return nil
	}

	policy := retry.Policy{MaxAttempts: s.cfg.MaxRetries, Backoff: s.cfg.RetryBackoff}
	if err := retry.Do(ctx, policy, apperrors.IsTransient, execute); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			if res, lerr := s.resolveIdempotency(ctx, req.IdempotencyKey); res != nil || lerr != nil {
				return res, lerr
			}
			return nil, apperrors.ErrEngineFailure
		}
		// If the commit outcome was ambiguous the pending record may have
		// become visible; mark it failed so the key reports the conflict.
		if pendingID != "" {
			if _, ferr := s.txnRepo.MarkFailed(ctx, pendingID, time.Now().UTC()); ferr != nil && !errors.Is(ferr, apperrors.ErrNotFound) {
				logger.Warn("Failed to mark issuance transaction as failed", slog.String("error", ferr.Error()))
			}
		}
		if apperrors.IsTransient(err) {
			logger.Error("Issuance retry budget exhausted", slog.String("error", err.Error()))
			return nil, errors.Join(apperrors.ErrEngineFailure, err)
		}
		return nil, err
	}

	logger.Info("Initial funds issuance completed",
		slog.String("transaction_id", completed.TransactionID),
		slog.String("to_account", completed.ToAccountID),
		slog.Int64("amount", completed.Amount),
	)
	return &dto.TransferResult{Outcome: dto.OutcomeCreated, Transaction: completed}, nil
}

func (s *transferService) executeIssuance(ctx context.Context, req dto.CreateIssuanceRequest, pendingID *string) (*domain.Transaction, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	to, err := s.accountRepo.FindAccountByIDInTx(ctx, tx, req.ToAccount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid destination account: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if !to.IsActive() {
		return nil, fmt.Errorf("invalid destination account: %w", apperrors.ErrAccountInactive)
	}

	if _, err := s.accountRepo.Credit(ctx, tx, req.ToAccount, req.Amount); err != nil {
		return nil, err
	}
	// Unconditional decrement: the issuer account is exempt from the
	// non-negative invariant by its class contract.
	if _, err := s.accountRepo.DebitIssuer(ctx, tx, s.cfg.SystemAccountID, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		FromAccountID:  s.cfg.SystemAccountID,
		ToAccountID:    req.ToAccount,
		Amount:         req.Amount,
		IdempotencyKey: req.IdempotencyKey,
		Status:         domain.TransactionPending,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.txnRepo.CreatePending(ctx, tx, txn); err != nil {
		return nil, err
	}
	*pendingID = txn.TransactionID

	if err := s.appendDoubleEntry(ctx, tx, txn, now); err != nil {
		return nil, err
	}

	completed, err := s.txnRepo.MarkCompleted(ctx, tx, txn.TransactionID, now)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return completed, nil
}
