package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/finvolt/banking-core/internal/core/domain"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewReconciliationService(suite.mockAccountRepo, suite.mockLedgerRepo)
}

func (suite *ReconciliationServiceTestSuite) account(balance int64) *domain.Account {
	return &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       uuid.NewString(),
		Status:       domain.AccountActive,
		Class:        domain.ClassOrdinary,
		Balance:      balance,
		CurrencyCode: "INR",
	}
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_Synchronized() {
	ctx := context.Background()
	account := suite.account(7_500)

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	// Ledger: credited 10,000 and spent 2,500.
	suite.mockLedgerRepo.On("SumByAccount", ctx, account.AccountID).
		Return(domain.LedgerTotals{TotalDebit: 2_500, TotalCredit: 10_000}, nil).Once()

	report, err := suite.service.Reconcile(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.True(report.IsSynchronized)
	suite.Equal(int64(7_500), report.StoredBalance)
	suite.Equal(int64(7_500), report.LedgerBalance)
	suite.Equal(int64(0), report.Drift)
	suite.Equal(account.UserID, report.UserID)
	suite.Equal("INR", report.CurrencyCode)
	suite.WithinDuration(time.Now().UTC(), report.ReconciledAt, time.Second)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_DriftDetected() {
	ctx := context.Background()
	account := suite.account(8_000)

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("SumByAccount", ctx, account.AccountID).
		Return(domain.LedgerTotals{TotalDebit: 2_500, TotalCredit: 10_000}, nil).Once()

	report, err := suite.service.Reconcile(ctx, account.AccountID)

	// Drift is reported, never treated as an error and never corrected.
	suite.Require().NoError(err)
	suite.False(report.IsSynchronized)
	suite.Equal(int64(500), report.Drift)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_EmptyLedger() {
	ctx := context.Background()
	account := suite.account(0)

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("SumByAccount", ctx, account.AccountID).
		Return(domain.LedgerTotals{}, nil).Once()

	report, err := suite.service.Reconcile(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.True(report.IsSynchronized)
	suite.Equal(int64(0), report.LedgerBalance)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.Reconcile(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(report)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumByAccount", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAll_ReportsInListingOrder() {
	ctx := context.Background()
	first := suite.account(100)
	second := suite.account(200)
	third := suite.account(300)

	suite.mockAccountRepo.On("ListAccountIDs", ctx).
		Return([]string{first.AccountID, second.AccountID, third.AccountID}, nil).Once()
	for _, acct := range []*domain.Account{first, second, third} {
		suite.mockAccountRepo.On("FindAccountByID", mock.Anything, acct.AccountID).Return(acct, nil).Once()
		suite.mockLedgerRepo.On("SumByAccount", mock.Anything, acct.AccountID).
			Return(domain.LedgerTotals{TotalCredit: acct.Balance}, nil).Once()
	}

	reports, err := suite.service.ReconcileAll(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(reports, 3)
	suite.Equal(first.AccountID, reports[0].AccountID)
	suite.Equal(second.AccountID, reports[1].AccountID)
	suite.Equal(third.AccountID, reports[2].AccountID)
	for _, report := range reports {
		suite.True(report.IsSynchronized)
	}
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAll_PropagatesFailure() {
	ctx := context.Background()
	healthy := suite.account(100)
	broken := suite.account(200)

	suite.mockAccountRepo.On("ListAccountIDs", ctx).
		Return([]string{healthy.AccountID, broken.AccountID}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, healthy.AccountID).Return(healthy, nil).Maybe()
	suite.mockLedgerRepo.On("SumByAccount", mock.Anything, healthy.AccountID).
		Return(domain.LedgerTotals{TotalCredit: healthy.Balance}, nil).Maybe()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, broken.AccountID).
		Return(nil, apperrors.ErrNotFound).Once()

	reports, err := suite.service.ReconcileAll(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(reports)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
