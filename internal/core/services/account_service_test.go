package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/finvolt/banking-core/internal/core/domain"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/core/services"
	"github.com/finvolt/banking-core/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.AccountSvcFacade
	principal       domain.Principal
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo)
	suite.principal = domain.Principal{UserID: uuid.NewString(), Role: domain.RoleUser}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{CurrencyCode: "INR"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.principal, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.principal.UserID, account.UserID)
	suite.Equal(domain.AccountActive, account.Status)
	suite.Equal(domain.ClassOrdinary, account.Class)
	suite.Equal(int64(0), account.Balance)
	suite.Equal("INR", account.CurrencyCode)
	suite.WithinDuration(time.Now().UTC(), account.CreatedAt, time.Second)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{CurrencyCode: "USD"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, suite.principal, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestGetAccount_Owner() {
	ctx := context.Background()
	owned := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.principal.UserID,
		Status:    domain.AccountActive,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, owned.AccountID).Return(owned, nil).Once()

	account, err := suite.service.GetAccount(ctx, suite.principal, owned.AccountID)

	suite.Require().NoError(err)
	suite.Equal(owned.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotOwnerForbidden() {
	ctx := context.Background()
	foreign := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Status:    domain.AccountActive,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(foreign, nil).Once()

	account, err := suite.service.GetAccount(ctx, suite.principal, foreign.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestGetAccount_SystemPrincipalReadsAny() {
	ctx := context.Background()
	system := domain.Principal{UserID: uuid.NewString(), Role: domain.RoleSystem}
	foreign := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Status:    domain.AccountActive,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(foreign, nil).Once()

	account, err := suite.service.GetAccount(ctx, system, foreign.AccountID)

	suite.Require().NoError(err)
	suite.Equal(foreign.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	ctx := context.Background()
	owned := []domain.Account{
		{AccountID: uuid.NewString(), UserID: suite.principal.UserID},
		{AccountID: uuid.NewString(), UserID: suite.principal.UserID},
	}
	suite.mockAccountRepo.On("ListAccountsByUser", ctx, suite.principal.UserID).Return(owned, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.principal)

	suite.Require().NoError(err)
	suite.Len(accounts, 2)
}

func (suite *AccountServiceTestSuite) TestGetLedger_EnforcesOwnership() {
	ctx := context.Background()
	foreign := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(foreign, nil).Once()

	entries, err := suite.service.GetLedger(ctx, suite.principal, foreign.AccountID, 50, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(entries)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetLedger_Success() {
	ctx := context.Background()
	owned := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.principal.UserID,
	}
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), AccountID: owned.AccountID, Type: domain.Credit, Amount: 1_000},
		{EntryID: uuid.NewString(), AccountID: owned.AccountID, Type: domain.Debit, Amount: 400},
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, owned.AccountID).Return(owned, nil).Once()
	suite.mockLedgerRepo.On("ListByAccount", ctx, owned.AccountID, 50, 0).Return(entries, nil).Once()

	got, err := suite.service.GetLedger(ctx, suite.principal, owned.AccountID, 50, 0)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
