package services_test

import (
	"context"
	"testing"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/core/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReceivableRepository is a mock type for the ReceivableRepositoryFacade interface
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindReceivableByID(ctx context.Context, receivableID int64) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListReceivables(ctx context.Context, query domain.LedgerQuery) ([]domain.Receivable, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindReceivablesForReport(ctx context.Context, filter domain.BalanceFilter) ([]domain.Receivable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	args := m.Called(ctx, receivable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) UpdateReceivable(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	args := m.Called(ctx, receivable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) DeleteReceivable(ctx context.Context, receivableID int64) error {
	args := m.Called(ctx, receivableID)
	return args.Error(0)
}

// --- Test Suite Setup ---

var testBranches = []string{"Zarkent Filiali", "Nabrejniy filiali"}

type ReceivableServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReceivableRepository
	service  portssvc.ReceivableSvcFacade
}

func (suite *ReceivableServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReceivableRepository)
	suite.service = services.NewReceivableServiceImpl(suite.mockRepo, testBranches, testBranches[0])
}

// --- Test Cases ---

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_Success_DerivesTotals() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		ClientName:       "Olmos Savdo MChJ",
		Branch:           "Zarkent Filiali",
		PriorMonths:      2,
		PriorAmount:      decimal.NewFromInt(100),
		MonthlyCharge:    decimal.NewFromInt(200),
		PaidCash:         decimal.NewFromInt(50),
		PaidBankTransfer: decimal.NewFromInt(25),
		PaidCard:         decimal.NewFromInt(25),
	}

	saved := &domain.Receivable{ID: 7, ClientName: req.ClientName, Branch: req.Branch}
	suite.mockRepo.On("SaveReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.TotalDue.Equal(decimal.NewFromInt(300)) &&
			r.Paid.Total.Equal(decimal.NewFromInt(100)) &&
			r.Outstanding.Equal(decimal.NewFromInt(200)) &&
			r.PriorCarry.Months == 2
	})).Return(saved, nil).Once()

	created, err := suite.service.CreateReceivable(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(7), created.ID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_Overpayment_NegativeOutstanding() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		ClientName:    "Prepaying Client",
		Branch:        "Nabrejniy filiali",
		MonthlyCharge: decimal.NewFromInt(100),
		PaidCash:      decimal.NewFromInt(150),
	}

	saved := &domain.Receivable{ID: 1}
	suite.mockRepo.On("SaveReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.Outstanding.Equal(decimal.NewFromInt(-50))
	})).Return(saved, nil).Once()

	created, err := suite.service.CreateReceivable(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_DefaultsBranch() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		ClientName: "No Branch Client",
	}

	saved := &domain.Receivable{ID: 2}
	suite.mockRepo.On("SaveReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.Branch == testBranches[0]
	})).Return(saved, nil).Once()

	_, err := suite.service.CreateReceivable(ctx, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_MissingClientName() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		ClientName: "   ",
		Branch:     "Zarkent Filiali",
	}

	created, err := suite.service.CreateReceivable(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_UnknownBranch() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		ClientName: "Client",
		Branch:     "Nowhere Filiali",
	}

	created, err := suite.service.CreateReceivable(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateReceivableRequest{
		ClientName:    "Client",
		Branch:        "Zarkent Filiali",
		MonthlyCharge: decimal.NewFromInt(-10),
	}

	created, err := suite.service.CreateReceivable(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestUpdateReceivable_MergesAndRederives() {
	ctx := context.Background()
	existing := &domain.Receivable{
		ID:            5,
		ClientName:    "Existing Client",
		Branch:        "Zarkent Filiali",
		PriorCarry:    domain.PriorPeriodCarry{Months: 1, Amount: decimal.NewFromInt(100)},
		MonthlyCharge: decimal.NewFromInt(200),
		TotalDue:      decimal.NewFromInt(300),
		Paid:          domain.PaymentBreakdown{Cash: decimal.NewFromInt(50), Total: decimal.NewFromInt(50)},
		Outstanding:   decimal.NewFromInt(250),
	}

	newCharge := decimal.NewFromInt(500)
	req := dto.UpdateReceivableRequest{MonthlyCharge: &newCharge}

	suite.mockRepo.On("FindReceivableByID", ctx, int64(5)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.ID == int64(5) &&
			r.MonthlyCharge.Equal(newCharge) &&
			r.TotalDue.Equal(decimal.NewFromInt(600)) &&
			r.Outstanding.Equal(decimal.NewFromInt(550)) &&
			r.ClientName == "Existing Client"
	})).Return(existing, nil).Once()

	updated, err := suite.service.UpdateReceivable(ctx, 5, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestUpdateReceivable_NotFound() {
	ctx := context.Background()
	newName := "Doesn't matter"
	req := dto.UpdateReceivableRequest{ClientName: &newName}

	suite.mockRepo.On("FindReceivableByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateReceivable(ctx, 99, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestUpdateReceivable_RejectsUnknownBranch() {
	ctx := context.Background()
	existing := &domain.Receivable{
		ID:         5,
		ClientName: "Existing Client",
		Branch:     "Zarkent Filiali",
	}

	badBranch := "Nowhere Filiali"
	req := dto.UpdateReceivableRequest{Branch: &badBranch}

	suite.mockRepo.On("FindReceivableByID", ctx, int64(5)).Return(existing, nil).Once()

	updated, err := suite.service.UpdateReceivable(ctx, 5, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestListReceivables_UnknownBranch() {
	ctx := context.Background()

	receivables, err := suite.service.ListReceivables(ctx, domain.LedgerQuery{Branch: "Nowhere Filiali", Limit: 10})

	suite.Require().Error(err)
	suite.Nil(receivables)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "ListReceivables", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestListReceivables_Success() {
	ctx := context.Background()
	expected := []domain.Receivable{
		{ID: 1, ClientName: "A", Branch: "Zarkent Filiali"},
		{ID: 2, ClientName: "B", Branch: "Zarkent Filiali"},
	}

	query := domain.LedgerQuery{Branch: "Zarkent Filiali", Limit: 10}
	suite.mockRepo.On("ListReceivables", ctx, query).Return(expected, nil).Once()

	receivables, err := suite.service.ListReceivables(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(expected, receivables)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestListReceivables_SearchTrimmed() {
	ctx := context.Background()

	suite.mockRepo.On("ListReceivables", ctx,
		domain.LedgerQuery{Search: "Olmos"},
	).Return([]domain.Receivable{}, nil).Once()

	_, err := suite.service.ListReceivables(ctx, domain.LedgerQuery{Search: "  Olmos  "})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestDeleteReceivable_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("DeleteReceivable", ctx, int64(42)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteReceivable(ctx, 42)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestGetReceivableByID_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindReceivableByID", ctx, int64(3)).Return(nil, expectedErr).Once()

	receivable, err := suite.service.GetReceivableByID(ctx, 3)

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, expectedErr)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestReceivableService(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}
