package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type BalanceServiceTestSuite struct {
	suite.Suite
	mockReceivableRepo *MockReceivableRepository
	mockPayableRepo    *MockPayableRepository
	service            portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockReceivableRepo = new(MockReceivableRepository)
	suite.mockPayableRepo = new(MockPayableRepository)
	suite.service = services.NewBalanceServiceImpl(suite.mockReceivableRepo, suite.mockPayableRepo, testBranches)
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_AggregatesBothLedgers() {
	ctx := context.Background()
	filter := domain.BalanceFilter{Branch: domain.AllBranches}

	receivables := []domain.Receivable{
		{
			Branch:        "Zarkent Filiali",
			PriorCarry:    domain.PriorPeriodCarry{Months: 2, Amount: decimal.NewFromInt(1000)},
			MonthlyCharge: decimal.NewFromInt(2000),
			TotalDue:      decimal.NewFromInt(3000),
			Paid: domain.PaymentBreakdown{
				Cash:  decimal.NewFromInt(500),
				Total: decimal.NewFromInt(500),
			},
			Outstanding: decimal.NewFromInt(2500),
		},
	}
	payables := []domain.Payable{
		{Branch: "Zarkent Filiali", MonthlyCharge: decimal.NewFromInt(800)},
	}

	suite.mockReceivableRepo.On("FindReceivablesForReport", ctx, filter).Return(receivables, nil).Once()
	suite.mockPayableRepo.On("FindPayablesForReport", ctx, filter).Return(payables, nil).Once()

	report, err := suite.service.GetBalanceReport(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Require().Len(report.Rows, 1)

	row := report.Rows[0]
	suite.Equal("Zarkent Filiali", row.Branch)
	suite.True(row.PriorCarry.Equal(decimal.NewFromInt(1000)))
	suite.True(row.MonthlyCharge.Equal(decimal.NewFromInt(2000)))
	suite.True(row.TotalDue.Equal(decimal.NewFromInt(3000)))
	suite.True(row.Paid.Total.Equal(decimal.NewFromInt(500)))
	suite.True(row.Outstanding.Equal(decimal.NewFromInt(2500)))
	suite.True(row.MonthlyExpense.Equal(decimal.NewFromInt(800)))
	suite.True(row.NetProfit.Equal(decimal.NewFromInt(1200)))

	suite.Equal("Total", report.Totals.Branch)
	suite.True(report.Totals.TotalDue.Equal(decimal.NewFromInt(3000)))
	suite.True(report.Totals.NetProfit.Equal(decimal.NewFromInt(1200)))

	suite.mockReceivableRepo.AssertExpectations(suite.T())
	suite.mockPayableRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_DropsUnknownBranchEntries() {
	ctx := context.Background()
	filter := domain.BalanceFilter{Branch: domain.AllBranches}

	receivables := []domain.Receivable{
		{
			Branch:        "Closed Filiali",
			MonthlyCharge: decimal.NewFromInt(9999),
			TotalDue:      decimal.NewFromInt(9999),
		},
		{
			Branch:        "Nabrejniy filiali",
			MonthlyCharge: decimal.NewFromInt(100),
			TotalDue:      decimal.NewFromInt(100),
			Outstanding:   decimal.NewFromInt(100),
		},
	}

	suite.mockReceivableRepo.On("FindReceivablesForReport", ctx, filter).Return(receivables, nil).Once()
	suite.mockPayableRepo.On("FindPayablesForReport", ctx, filter).Return([]domain.Payable{}, nil).Once()

	report, err := suite.service.GetBalanceReport(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.Equal("Nabrejniy filiali", report.Rows[0].Branch)
	suite.True(report.Totals.MonthlyCharge.Equal(decimal.NewFromInt(100)))
}

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_OmitsInactiveBranches() {
	ctx := context.Background()
	filter := domain.BalanceFilter{Branch: domain.AllBranches}

	// Only the first branch has activity; the second branch has records with
	// payments but no charges and must still be omitted.
	receivables := []domain.Receivable{
		{Branch: "Zarkent Filiali", MonthlyCharge: decimal.NewFromInt(100)},
	}

	suite.mockReceivableRepo.On("FindReceivablesForReport", ctx, filter).Return(receivables, nil).Once()
	suite.mockPayableRepo.On("FindPayablesForReport", ctx, filter).Return([]domain.Payable{}, nil).Once()

	report, err := suite.service.GetBalanceReport(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.Equal("Zarkent Filiali", report.Rows[0].Branch)
}

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_EmptyBranchDefaultsToAll() {
	ctx := context.Background()
	resolved := domain.BalanceFilter{Branch: domain.AllBranches}

	suite.mockReceivableRepo.On("FindReceivablesForReport", ctx, resolved).Return([]domain.Receivable{}, nil).Once()
	suite.mockPayableRepo.On("FindPayablesForReport", ctx, resolved).Return([]domain.Payable{}, nil).Once()

	report, err := suite.service.GetBalanceReport(ctx, domain.BalanceFilter{})

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Empty(report.Rows)

	suite.mockReceivableRepo.AssertExpectations(suite.T())
	suite.mockPayableRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_SingleBranchFilter() {
	ctx := context.Background()
	filter := domain.BalanceFilter{Branch: "Nabrejniy filiali"}

	receivables := []domain.Receivable{
		{Branch: "Nabrejniy filiali", MonthlyCharge: decimal.NewFromInt(300)},
	}

	suite.mockReceivableRepo.On("FindReceivablesForReport", ctx, filter).Return(receivables, nil).Once()
	suite.mockPayableRepo.On("FindPayablesForReport", ctx, filter).Return([]domain.Payable{}, nil).Once()

	report, err := suite.service.GetBalanceReport(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.Equal("Nabrejniy filiali", report.Rows[0].Branch)
}

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_DateBoundsInclusive() {
	ctx := context.Background()
	filter := domain.BalanceFilter{
		Branch: domain.AllBranches,
		From:   "2026-09-01",
		To:     "2026-09-30",
	}

	// Receivables count by their last update, payables by their entry date.
	// Records landing exactly on a bound stay in the report.
	receivables := []domain.Receivable{
		{
			Branch:        "Zarkent Filiali",
			MonthlyCharge: decimal.NewFromInt(100),
			LastUpdatedAt: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Branch:        "Zarkent Filiali",
			MonthlyCharge: decimal.NewFromInt(50),
			LastUpdatedAt: time.Date(2026, time.September, 30, 18, 45, 0, 0, time.UTC),
		},
		{
			Branch:        "Zarkent Filiali",
			MonthlyCharge: decimal.NewFromInt(900),
			LastUpdatedAt: time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC),
		},
		{
			Branch:        "Zarkent Filiali",
			MonthlyCharge: decimal.NewFromInt(700),
			LastUpdatedAt: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	payables := []domain.Payable{
		{Branch: "Zarkent Filiali", EntryDate: "30/09/2026", MonthlyCharge: decimal.NewFromInt(40)},
		{Branch: "Zarkent Filiali", EntryDate: "01/10/2026", MonthlyCharge: decimal.NewFromInt(300)},
		{Branch: "Zarkent Filiali", EntryDate: "", MonthlyCharge: decimal.NewFromInt(500)},
	}

	suite.mockReceivableRepo.On("FindReceivablesForReport", ctx, filter).Return(receivables, nil).Once()
	suite.mockPayableRepo.On("FindPayablesForReport", ctx, filter).Return(payables, nil).Once()

	report, err := suite.service.GetBalanceReport(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)

	row := report.Rows[0]
	suite.True(row.MonthlyCharge.Equal(decimal.NewFromInt(150)))
	suite.True(row.MonthlyExpense.Equal(decimal.NewFromInt(40)))
	suite.True(row.NetProfit.Equal(decimal.NewFromInt(110)))
}

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_UnknownBranch() {
	ctx := context.Background()

	report, err := suite.service.GetBalanceReport(ctx, domain.BalanceFilter{Branch: "Nowhere Filiali"})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "FindReceivablesForReport", mock.Anything, mock.Anything)
	suite.mockPayableRepo.AssertNotCalled(suite.T(), "FindPayablesForReport", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetBalanceReport_BadDateBound() {
	ctx := context.Background()

	report, err := suite.service.GetBalanceReport(ctx, domain.BalanceFilter{
		Branch: domain.AllBranches,
		From:   "07/01/2025",
	})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "FindReceivablesForReport", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
