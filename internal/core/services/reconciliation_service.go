package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/finvolt/banking-core/internal/core/domain"
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/middleware"
	"golang.org/x/sync/errgroup"
)

// reconcileSweepConcurrency bounds how many accounts the full sweep audits at
// once.
const reconcileSweepConcurrency = 8

// reconciliationService recomputes ledger-derived balances and compares them
// to stored balances. Strictly read-only: a drift is reported, never
// corrected. The stored balance remains the gating source of truth; the
// ledger sum is only an audit signal.
type reconciliationService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewReconciliationService creates the ledger auditor.
func NewReconciliationService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile audits one account. Balances are integer minor units, so the
// comparison tolerance is exactly zero.
func (s *reconciliationService) Reconcile(ctx context.Context, accountID string) (*domain.ReconciliationReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	totals, err := s.ledgerRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report := &domain.ReconciliationReport{
		AccountID:     account.AccountID,
		UserID:        account.UserID,
		CurrencyCode:  account.CurrencyCode,
		Status:        account.Status,
		StoredBalance: account.Balance,
		LedgerBalance: totals.Balance(),
		ReconciledAt:  time.Now().UTC(),
	}
	report.Drift = report.StoredBalance - report.LedgerBalance
	report.IsSynchronized = report.Drift == 0

	if !report.IsSynchronized {
		logger.Error("CRITICAL: ledger drift detected",
			slog.String("account_id", accountID),
			slog.Int64("stored_balance", report.StoredBalance),
			slog.Int64("ledger_balance", report.LedgerBalance),
			slog.Int64("drift", report.Drift),
		)
	} else {
		logger.Info("Reconciliation success: balances match",
			slog.String("account_id", accountID),
			slog.Int64("balance", report.StoredBalance),
		)
	}

	return report, nil
}

// ReconcileAll audits every account with bounded concurrency and returns the
// reports in account listing order.
func (s *reconciliationService) ReconcileAll(ctx context.Context) ([]domain.ReconciliationReport, error) {
	ids, err := s.accountRepo.ListAccountIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.ReconciliationReport, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reconcileSweepConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			report, err := s.Reconcile(gctx, id)
			if err != nil {
				return err
			}
			reports[i] = *report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
