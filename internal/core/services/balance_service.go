package services

import (
	"context"
	"fmt"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portsrepo "github.com/BalansDev/branch_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
)

// balanceServiceImpl implements the BalanceSvcFacade interface
type balanceServiceImpl struct {
	BaseService
	receivableRepo portsrepo.ReceivableReader
	payableRepo    portsrepo.PayableReader
	branches       []string
}

// NewBalanceServiceImpl creates a new balance report service over the two
// ledger repositories.
func NewBalanceServiceImpl(receivableRepo portsrepo.ReceivableReader, payableRepo portsrepo.PayableReader, branches []string) portssvc.BalanceSvcFacade {
	return &balanceServiceImpl{
		receivableRepo: receivableRepo,
		payableRepo:    payableRepo,
		branches:       branches,
	}
}

// Ensure balanceServiceImpl implements the BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*balanceServiceImpl)(nil)

func (s *balanceServiceImpl) GetBalanceReport(ctx context.Context, filter domain.BalanceFilter) (*domain.BalanceReport, error) {
	if err := s.validateFilter(&filter); err != nil {
		s.LogError(ctx, err, "Balance report filter rejected")
		return nil, err
	}

	receivables, err := s.receivableRepo.FindReceivablesForReport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load receivables for balance report")
		return nil, err
	}
	payables, err := s.payableRepo.FindPayablesForReport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payables for balance report")
		return nil, err
	}

	from := parseReportBound(filter.From)
	to := parseReportBound(filter.To)
	report := aggregateBalances(s.reportBranches(filter.Branch), receivables, payables, from, to)
	return report, nil
}

// parseReportBound turns a validated YYYY-MM-DD filter bound into a time
// value; an empty bound stays the zero time, leaving that side open.
func parseReportBound(d string) time.Time {
	if d == "" {
		return time.Time{}
	}
	t, _ := time.Parse("2006-01-02", d)
	return t
}

// reportBranches resolves the filter to the ordered branch set the report
// covers.
func (s *balanceServiceImpl) reportBranches(branch string) []string {
	if branch == domain.AllBranches {
		return s.branches
	}
	return []string{branch}
}

func (s *balanceServiceImpl) validateFilter(filter *domain.BalanceFilter) error {
	if filter.Branch == "" {
		filter.Branch = domain.AllBranches
	}
	if filter.Branch != domain.AllBranches && !branchAllowed(s.branches, filter.Branch) {
		return fmt.Errorf("unknown branch %q: %w", filter.Branch, apperrors.ErrValidation)
	}
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("date bound must be YYYY-MM-DD: %w", apperrors.ErrValidation)
		}
	}
	return nil
}

// aggregateBalances folds the filtered ledgers into one row per branch plus
// a field-wise totals row. It is a pure function of its inputs.
//
// The date bounds are inclusive on both ends and apply per ledger: a
// receivable counts by its last update, a payable by its entry date. A zero
// bound leaves that side open. Ledger entries naming a branch outside the
// configured set are dropped, and a branch whose prior carry, monthly
// receivable charge and monthly expense are all zero is omitted from the
// rows (it has no activity to reconcile).
func aggregateBalances(branches []string, receivables []domain.Receivable, payables []domain.Payable, from, to time.Time) *domain.BalanceReport {
	rowsByBranch := make(map[string]*domain.BalanceRow, len(branches))
	for _, b := range branches {
		rowsByBranch[b] = &domain.BalanceRow{Branch: b}
	}

	for i := range receivables {
		r := &receivables[i]
		row, ok := rowsByBranch[r.Branch]
		if !ok {
			continue
		}
		if !from.IsZero() && r.LastUpdatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !r.LastUpdatedAt.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		row.PriorCarry = row.PriorCarry.Add(r.PriorCarry.Amount)
		row.MonthlyCharge = row.MonthlyCharge.Add(r.MonthlyCharge)
		row.TotalDue = row.TotalDue.Add(r.TotalDue)
		row.Paid.Cash = row.Paid.Cash.Add(r.Paid.Cash)
		row.Paid.BankTransfer = row.Paid.BankTransfer.Add(r.Paid.BankTransfer)
		row.Paid.Card = row.Paid.Card.Add(r.Paid.Card)
		row.Paid.Total = row.Paid.Total.Add(r.Paid.Total)
		row.Outstanding = row.Outstanding.Add(r.Outstanding)
	}

	for i := range payables {
		p := &payables[i]
		row, ok := rowsByBranch[p.Branch]
		if !ok {
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			// An unparseable entry date cannot be placed in the range.
			d, err := time.Parse(domain.PayableDateLayout, p.EntryDate)
			if err != nil {
				continue
			}
			if !from.IsZero() && d.Before(from) {
				continue
			}
			if !to.IsZero() && d.After(to) {
				continue
			}
		}
		row.MonthlyExpense = row.MonthlyExpense.Add(p.MonthlyCharge)
	}

	report := &domain.BalanceReport{Totals: domain.BalanceRow{Branch: "Total"}}
	for _, b := range branches {
		row := rowsByBranch[b]
		if row.PriorCarry.IsZero() && row.MonthlyCharge.IsZero() && row.MonthlyExpense.IsZero() {
			continue
		}
		row.NetProfit = row.MonthlyCharge.Sub(row.MonthlyExpense)
		report.Rows = append(report.Rows, *row)

		t := &report.Totals
		t.PriorCarry = t.PriorCarry.Add(row.PriorCarry)
		t.MonthlyCharge = t.MonthlyCharge.Add(row.MonthlyCharge)
		t.TotalDue = t.TotalDue.Add(row.TotalDue)
		t.Paid.Cash = t.Paid.Cash.Add(row.Paid.Cash)
		t.Paid.BankTransfer = t.Paid.BankTransfer.Add(row.Paid.BankTransfer)
		t.Paid.Card = t.Paid.Card.Add(row.Paid.Card)
		t.Paid.Total = t.Paid.Total.Add(row.Paid.Total)
		t.Outstanding = t.Outstanding.Add(row.Outstanding)
		t.MonthlyExpense = t.MonthlyExpense.Add(row.MonthlyExpense)
		t.NetProfit = t.NetProfit.Add(row.NetProfit)
	}

	return report
}
