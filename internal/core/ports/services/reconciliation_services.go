package services

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
)

// ReconciliationSvcFacade is the read-only ledger auditor contract.
type ReconciliationSvcFacade interface {
	// Reconcile recomputes the ledger-derived balance for one account and
	// compares it to the stored balance. Never mutates state.
	Reconcile(ctx context.Context, accountID string) (*domain.ReconciliationReport, error)

	// ReconcileAll audits every account and returns one report per account.
	ReconcileAll(ctx context.Context) ([]domain.ReconciliationReport, error)
}
