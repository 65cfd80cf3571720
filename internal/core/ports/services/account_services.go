package services

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/finvolt/banking-core/internal/dto"
)

// AccountSvcFacade covers account onboarding and reads. Accounts are created
// once and only transition status or balance afterwards; closure is terminal.
type AccountSvcFacade interface {
	// CreateAccount opens a new ordinary account for the principal.
	CreateAccount(ctx context.Context, principal domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccount retrieves an account. Ordinary principals may only read
	// their own accounts; the system principal may read any.
	GetAccount(ctx context.Context, principal domain.Principal, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the principal's accounts.
	ListAccounts(ctx context.Context, principal domain.Principal) ([]domain.Account, error)

	// GetLedger retrieves an account's ledger entries, newest first, with the
	// same ownership rules as GetAccount.
	GetLedger(ctx context.Context, principal domain.Principal, accountID string, limit, offset int) ([]domain.LedgerEntry, error)
}
