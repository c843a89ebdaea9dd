package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portsrepo "github.com/BalansDev/branch_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
	"github.com/BalansDev/branch_accounting_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// payableServiceImpl implements the PayableSvcFacade interface
type payableServiceImpl struct {
	BaseService
	payableRepo   portsrepo.PayableRepositoryFacade
	branches      []string
	defaultBranch string
}

// NewPayableServiceImpl creates a new payable service. The branch list and
// default branch come from configuration.
func NewPayableServiceImpl(repo portsrepo.PayableRepositoryFacade, branches []string, defaultBranch string) portssvc.PayableSvcFacade {
	return &payableServiceImpl{
		payableRepo:   repo,
		branches:      branches,
		defaultBranch: defaultBranch,
	}
}

// Ensure payableServiceImpl implements the PayableSvcFacade interface
var _ portssvc.PayableSvcFacade = (*payableServiceImpl)(nil)

func (s *payableServiceImpl) CreatePayable(ctx context.Context, req dto.CreatePayableRequest) (*domain.Payable, error) {
	branch := req.Branch
	if branch == "" {
		branch = s.defaultBranch
	}
	entryDate := req.EntryDate
	if entryDate == "" {
		entryDate = time.Now().Format(domain.PayableDateLayout)
	}

	if err := s.validateInputs(entryDate, req.PayeeName, branch,
		req.PriorBalance, req.MonthlyCharge, req.AmountPaid); err != nil {
		s.LogError(ctx, err, "Payable rejected by validation",
			slog.String("payee_name", req.PayeeName),
			slog.String("branch", branch))
		return nil, err
	}

	payable := domain.Payable{
		EntryDate:     entryDate,
		PayeeName:     strings.TrimSpace(req.PayeeName),
		Branch:        branch,
		Category:      req.Category,
		PriorBalance:  req.PriorBalance,
		MonthlyCharge: req.MonthlyCharge,
		AmountPaid:    req.AmountPaid,
		// Stamped with the creation period so the record's first rollover
		// happens at the next month boundary, not at the next daily tick.
		RolledPeriod: time.Now().Format(domain.RolloverPeriodLayout),
	}
	derivePayable(&payable)

	saved, err := s.payableRepo.SavePayable(ctx, payable)
	if err != nil {
		s.LogError(ctx, err, "Failed to save payable",
			slog.String("payee_name", payable.PayeeName),
			slog.String("branch", payable.Branch))
		return nil, err
	}

	s.LogInfo(ctx, "Payable created successfully",
		slog.Int64("payable_id", saved.ID),
		slog.String("branch", saved.Branch))
	return saved, nil
}

func (s *payableServiceImpl) UpdatePayable(ctx context.Context, payableID int64, req dto.UpdatePayableRequest) (*domain.Payable, error) {
	existing, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find payable for update",
			slog.Int64("payable_id", payableID))
		return nil, err
	}

	merged := *existing
	if req.EntryDate != nil {
		merged.EntryDate = *req.EntryDate
	}
	if req.PayeeName != nil {
		merged.PayeeName = strings.TrimSpace(*req.PayeeName)
	}
	if req.Branch != nil {
		merged.Branch = *req.Branch
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.PriorBalance != nil {
		merged.PriorBalance = *req.PriorBalance
	}
	if req.MonthlyCharge != nil {
		merged.MonthlyCharge = *req.MonthlyCharge
	}
	if req.AmountPaid != nil {
		merged.AmountPaid = *req.AmountPaid
	}

	if err := s.validateInputs(merged.EntryDate, merged.PayeeName, merged.Branch,
		merged.PriorBalance, merged.MonthlyCharge, merged.AmountPaid); err != nil {
		s.LogError(ctx, err, "Payable update rejected by validation",
			slog.Int64("payable_id", payableID))
		return nil, err
	}
	derivePayable(&merged)

	updated, err := s.payableRepo.UpdatePayable(ctx, merged)
	if err != nil {
		s.LogError(ctx, err, "Failed to update payable",
			slog.Int64("payable_id", payableID))
		return nil, err
	}

	s.LogInfo(ctx, "Payable updated successfully",
		slog.Int64("payable_id", updated.ID))
	return updated, nil
}

func (s *payableServiceImpl) DeletePayable(ctx context.Context, payableID int64) error {
	if err := s.payableRepo.DeletePayable(ctx, payableID); err != nil {
		s.LogError(ctx, err, "Failed to delete payable",
			slog.Int64("payable_id", payableID))
		return err
	}
	s.LogInfo(ctx, "Payable deleted", slog.Int64("payable_id", payableID))
	return nil
}

func (s *payableServiceImpl) GetPayableByID(ctx context.Context, payableID int64) (*domain.Payable, error) {
	payable, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find payable",
			slog.Int64("payable_id", payableID))
		return nil, err
	}
	return payable, nil
}

func (s *payableServiceImpl) ListPayables(ctx context.Context, query domain.LedgerQuery) ([]domain.Payable, error) {
	if query.Branch != "" && !branchAllowed(s.branches, query.Branch) {
		return nil, fmt.Errorf("unknown branch %q: %w", query.Branch, apperrors.ErrValidation)
	}
	query.Search = strings.TrimSpace(query.Search)
	payables, err := s.payableRepo.ListPayables(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payables", slog.String("branch", query.Branch))
		return nil, err
	}
	return payables, nil
}

// RunRollover folds every payable's monthly charge into its prior balance for
// the month containing now. Each record is stamped with the period, so a
// second run within the same month finds nothing to do.
func (s *payableServiceImpl) RunRollover(ctx context.Context, now time.Time) (*domain.RolloverResult, error) {
	period := now.Format(domain.RolloverPeriodLayout)
	result := &domain.RolloverResult{Period: period}

	pending, err := s.payableRepo.FindPayablesPendingRollover(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payables pending rollover",
			slog.String("period", period))
		return nil, err
	}

	for i := range pending {
		// A record stamped with the running period (entered this month, or
		// already rolled) waits for the next boundary.
		if pending[i].RolledPeriod == period {
			result.Skipped++
			continue
		}
		rolled := rollPayable(pending[i], period)
		if _, err := s.payableRepo.ApplyRollover(ctx, rolled); err != nil {
			// A concurrent run may have stamped the row between the
			// pending query and this write.
			if errors.Is(err, apperrors.ErrNotFound) {
				result.Skipped++
				continue
			}
			s.LogError(ctx, err, "Failed to roll payable",
				slog.Int64("payable_id", rolled.ID),
				slog.String("period", period))
			result.Failed++
			continue
		}
		result.Rolled++
	}

	s.LogInfo(ctx, "Rollover run finished",
		slog.String("period", period),
		slog.Int("rolled", result.Rolled),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))
	return result, nil
}

// rollPayable produces the new-month state of a payable: the month's charge
// is absorbed into the prior balance, the monthly charge and paid amount
// reset, and the whole new balance becomes outstanding debt.
func rollPayable(p domain.Payable, period string) domain.Payable {
	p.PriorBalance = p.PriorBalance.Add(p.MonthlyCharge)
	p.MonthlyCharge = decimal.Zero
	p.AmountPaid = decimal.Zero
	p.RolledPeriod = period
	derivePayable(&p)
	return p
}

// validateInputs enforces the rules every payable write goes through.
func (s *payableServiceImpl) validateInputs(entryDate, payeeName, branch string, amounts ...decimal.Decimal) error {
	if strings.TrimSpace(payeeName) == "" {
		return fmt.Errorf("payee name is required: %w", apperrors.ErrValidation)
	}
	if _, err := time.Parse(domain.PayableDateLayout, entryDate); err != nil {
		return fmt.Errorf("entry date must be DD/MM/YYYY: %w", apperrors.ErrValidation)
	}
	if !branchAllowed(s.branches, branch) {
		return fmt.Errorf("unknown branch %q: %w", branch, apperrors.ErrValidation)
	}
	for _, a := range amounts {
		if a.IsNegative() {
			return fmt.Errorf("amounts cannot be negative: %w", apperrors.ErrValidation)
		}
	}
	return nil
}

// derivePayable recomputes the derived amounts from the entered inputs.
func derivePayable(p *domain.Payable) {
	p.TotalCharged = accounting.TotalCharged(p.PriorBalance, p.MonthlyCharge)
	p.OutstandingDebt, p.OutstandingAdvance = accounting.SplitOutstanding(p.TotalCharged, p.AmountPaid)
}
