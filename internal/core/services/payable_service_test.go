package services_test

import (
	"context"
	"testing"
	"time"

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

// MockPayableRepository is a mock type for the PayableRepositoryFacade interface
type MockPayableRepository struct {
	mock.Mock
}

func (m *MockPayableRepository) FindPayableByID(ctx context.Context, payableID int64) (*domain.Payable, error) {
	args := m.Called(ctx, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) ListPayables(ctx context.Context, query domain.LedgerQuery) ([]domain.Payable, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindPayablesForReport(ctx context.Context, filter domain.BalanceFilter) ([]domain.Payable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindPayablesPendingRollover(ctx context.Context, period string) ([]domain.Payable, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) SavePayable(ctx context.Context, payable domain.Payable) (*domain.Payable, error) {
	args := m.Called(ctx, payable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) UpdatePayable(ctx context.Context, payable domain.Payable) (*domain.Payable, error) {
	args := m.Called(ctx, payable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) ApplyRollover(ctx context.Context, payable domain.Payable) (*domain.Payable, error) {
	args := m.Called(ctx, payable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) DeletePayable(ctx context.Context, payableID int64) error {
	args := m.Called(ctx, payableID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PayableServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPayableRepository
	service  portssvc.PayableSvcFacade
}

func (suite *PayableServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPayableRepository)
	suite.service = services.NewPayableServiceImpl(suite.mockRepo, testBranches, testBranches[0])
}

// --- Test Cases ---

func (suite *PayableServiceTestSuite) TestCreatePayable_Success_DerivesDebt() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		EntryDate:     "15/07/2025",
		PayeeName:     "Ofis Ijara",
		Branch:        "Zarkent Filiali",
		Category:      "rent",
		PriorBalance:  decimal.NewFromInt(100),
		MonthlyCharge: decimal.NewFromInt(50),
		AmountPaid:    decimal.NewFromInt(30),
	}

	saved := &domain.Payable{ID: 11}
	suite.mockRepo.On("SavePayable", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.TotalCharged.Equal(decimal.NewFromInt(150)) &&
			p.OutstandingDebt.Equal(decimal.NewFromInt(120)) &&
			p.OutstandingAdvance.IsZero()
	})).Return(saved, nil).Once()

	created, err := suite.service.CreatePayable(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(11), created.ID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestCreatePayable_Overpayment_DerivesAdvance() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		EntryDate:     "01/07/2025",
		PayeeName:     "Elektr Ta'minoti",
		Branch:        "Nabrejniy filiali",
		MonthlyCharge: decimal.NewFromInt(100),
		AmountPaid:    decimal.NewFromInt(150),
	}

	saved := &domain.Payable{ID: 12}
	suite.mockRepo.On("SavePayable", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.OutstandingDebt.IsZero() &&
			p.OutstandingAdvance.Equal(decimal.NewFromInt(50))
	})).Return(saved, nil).Once()

	created, err := suite.service.CreatePayable(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestCreatePayable_StampsCreationPeriod() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		EntryDate:     "15/07/2025",
		PayeeName:     "Ofis Ijara",
		Branch:        "Zarkent Filiali",
		MonthlyCharge: decimal.NewFromInt(500),
	}

	period := time.Now().Format(domain.RolloverPeriodLayout)
	saved := &domain.Payable{ID: 13, RolledPeriod: period}
	suite.mockRepo.On("SavePayable", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.RolledPeriod == period
	})).Return(saved, nil).Once()

	created, err := suite.service.CreatePayable(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(period, created.RolledPeriod)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestCreatePayable_DefaultsEntryDateToToday() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		PayeeName: "Elektr Ta'minoti",
		Branch:    "Zarkent Filiali",
	}

	today := time.Now().Format(domain.PayableDateLayout)
	saved := &domain.Payable{ID: 14}
	suite.mockRepo.On("SavePayable", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.EntryDate == today
	})).Return(saved, nil).Once()

	_, err := suite.service.CreatePayable(ctx, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestCreatePayable_BadEntryDate() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		EntryDate: "2025-07-15",
		PayeeName: "Payee",
		Branch:    "Zarkent Filiali",
	}

	created, err := suite.service.CreatePayable(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayable", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestCreatePayable_MissingPayeeName() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		EntryDate: "15/07/2025",
		PayeeName: "",
		Branch:    "Zarkent Filiali",
	}

	created, err := suite.service.CreatePayable(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayable", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestUpdatePayable_MergesAndRederives() {
	ctx := context.Background()
	existing := &domain.Payable{
		ID:            8,
		EntryDate:     "01/06/2025",
		PayeeName:     "Internet Provider",
		Branch:        "Zarkent Filiali",
		PriorBalance:  decimal.NewFromInt(100),
		MonthlyCharge: decimal.NewFromInt(50),
		AmountPaid:    decimal.NewFromInt(150),
	}

	newPaid := decimal.NewFromInt(40)
	req := dto.UpdatePayableRequest{AmountPaid: &newPaid}

	suite.mockRepo.On("FindPayableByID", ctx, int64(8)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePayable", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.ID == int64(8) &&
			p.TotalCharged.Equal(decimal.NewFromInt(150)) &&
			p.OutstandingDebt.Equal(decimal.NewFromInt(110)) &&
			p.OutstandingAdvance.IsZero()
	})).Return(existing, nil).Once()

	updated, err := suite.service.UpdatePayable(ctx, 8, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestUpdatePayable_NotFound() {
	ctx := context.Background()
	newName := "Doesn't matter"
	req := dto.UpdatePayableRequest{PayeeName: &newName}

	suite.mockRepo.On("FindPayableByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdatePayable(ctx, 99, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePayable", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestRunRollover_RollsPendingRecords() {
	ctx := context.Background()
	now := time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)

	pending := []domain.Payable{
		{
			ID:            1,
			EntryDate:     "01/06/2025",
			PayeeName:     "Ofis Ijara",
			Branch:        "Zarkent Filiali",
			PriorBalance:  decimal.NewFromInt(100),
			MonthlyCharge: decimal.NewFromInt(50),
			AmountPaid:    decimal.NewFromInt(30),
		},
	}

	suite.mockRepo.On("FindPayablesPendingRollover", ctx, "2025-07").Return(pending, nil).Once()
	suite.mockRepo.On("ApplyRollover", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.ID == int64(1) &&
			p.RolledPeriod == "2025-07" &&
			p.PriorBalance.Equal(decimal.NewFromInt(150)) &&
			p.MonthlyCharge.IsZero() &&
			p.AmountPaid.IsZero() &&
			p.TotalCharged.Equal(decimal.NewFromInt(150)) &&
			p.OutstandingDebt.Equal(decimal.NewFromInt(150)) &&
			p.OutstandingAdvance.IsZero()
	})).Return(&pending[0], nil).Once()

	result, err := suite.service.RunRollover(ctx, now)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("2025-07", result.Period)
	suite.Equal(1, result.Rolled)
	suite.Equal(0, result.Skipped)
	suite.Equal(0, result.Failed)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRunRollover_NothingPending() {
	ctx := context.Background()
	now := time.Date(2025, time.July, 20, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindPayablesPendingRollover", ctx, "2025-07").Return([]domain.Payable{}, nil).Once()

	result, err := suite.service.RunRollover(ctx, now)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(0, result.Rolled)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyRollover", mock.Anything, mock.Anything)
}

// A payable entered mid-month carries the running period's stamp, so daily
// rollover checks within that month must leave its charge untouched.
func (suite *PayableServiceTestSuite) TestRunRollover_RecordEnteredThisMonthNotRolled() {
	ctx := context.Background()
	now := time.Date(2026, time.September, 16, 3, 0, 0, 0, time.UTC)

	pending := []domain.Payable{
		{
			ID:            5,
			EntryDate:     "15/09/2026",
			PayeeName:     "Ofis Ijara",
			Branch:        "Zarkent Filiali",
			MonthlyCharge: decimal.NewFromInt(500),
			RolledPeriod:  "2026-09",
		},
	}

	suite.mockRepo.On("FindPayablesPendingRollover", ctx, "2026-09").Return(pending, nil).Once()

	result, err := suite.service.RunRollover(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(0, result.Rolled)
	suite.Equal(1, result.Skipped)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyRollover", mock.Anything, mock.Anything)
}

func (suite *PayableServiceTestSuite) TestRunRollover_ConcurrentStampCountsAsSkipped() {
	ctx := context.Background()
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	pending := []domain.Payable{
		{ID: 1, EntryDate: "01/06/2025", PayeeName: "A", Branch: "Zarkent Filiali"},
		{ID: 2, EntryDate: "01/06/2025", PayeeName: "B", Branch: "Zarkent Filiali"},
	}

	suite.mockRepo.On("FindPayablesPendingRollover", ctx, "2025-07").Return(pending, nil).Once()
	suite.mockRepo.On("ApplyRollover", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.ID == int64(1)
	})).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ApplyRollover", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.ID == int64(2)
	})).Return(&pending[1], nil).Once()

	result, err := suite.service.RunRollover(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(1, result.Rolled)
	suite.Equal(1, result.Skipped)
	suite.Equal(0, result.Failed)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRunRollover_WriteErrorCountsAsFailed() {
	ctx := context.Background()
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	pending := []domain.Payable{
		{ID: 1, EntryDate: "01/06/2025", PayeeName: "A", Branch: "Zarkent Filiali"},
	}

	suite.mockRepo.On("FindPayablesPendingRollover", ctx, "2025-07").Return(pending, nil).Once()
	suite.mockRepo.On("ApplyRollover", ctx, mock.AnythingOfType("domain.Payable")).Return(nil, assert.AnError).Once()

	result, err := suite.service.RunRollover(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(0, result.Rolled)
	suite.Equal(1, result.Failed)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRunRollover_PendingQueryError() {
	ctx := context.Background()
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	expectedErr := assert.AnError

	suite.mockRepo.On("FindPayablesPendingRollover", ctx, "2025-07").Return(nil, expectedErr).Once()

	result, err := suite.service.RunRollover(ctx, now)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, expectedErr)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestPayableService(t *testing.T) {
	suite.Run(t, new(PayableServiceTestSuite))
}
