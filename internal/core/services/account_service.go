package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/finvolt/banking-core/internal/core/domain"
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/dto"
	"github.com/finvolt/banking-core/internal/middleware"
	"github.com/google/uuid"
)

// accountService handles account onboarding and reads.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new ordinary account for the principal, ACTIVE with
// zero balance. Balances are only ever funded through transfers or issuance.
func (s *accountService) CreateAccount(ctx context.Context, principal domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       principal.UserID,
		Status:       domain.AccountActive,
		Class:        domain.ClassOrdinary,
		Balance:      0,
		CurrencyCode: req.CurrencyCode,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("currency", account.CurrencyCode),
	)
	return &account, nil
}

// GetAccount retrieves an account, enforcing ownership for ordinary
// principals.
func (s *accountService) GetAccount(ctx context.Context, principal domain.Principal, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != principal.UserID && !principal.IsSystem() {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrForbidden)
	}
	return account, nil
}

// ListAccounts retrieves the principal's accounts.
func (s *accountService) ListAccounts(ctx context.Context, principal domain.Principal) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByUser(ctx, principal.UserID)
}

// GetLedger retrieves an account's ledger entries with the same ownership
// rules as GetAccount.
func (s *accountService) GetLedger(ctx context.Context, principal domain.Principal, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	if _, err := s.GetAccount(ctx, principal, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListByAccount(ctx, accountID, limit, offset)
}
