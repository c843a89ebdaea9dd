package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portsrepo "github.com/BalansDev/branch_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
	"github.com/BalansDev/branch_accounting_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// receivableServiceImpl implements the ReceivableSvcFacade interface
type receivableServiceImpl struct {
	BaseService
	receivableRepo portsrepo.ReceivableRepositoryFacade
	branches       []string
	defaultBranch  string
}

// NewReceivableServiceImpl creates a new receivable service. The branch list
// and default branch come from configuration.
func NewReceivableServiceImpl(repo portsrepo.ReceivableRepositoryFacade, branches []string, defaultBranch string) portssvc.ReceivableSvcFacade {
	return &receivableServiceImpl{
		receivableRepo: repo,
		branches:       branches,
		defaultBranch:  defaultBranch,
	}
}

// Ensure receivableServiceImpl implements the ReceivableSvcFacade interface
var _ portssvc.ReceivableSvcFacade = (*receivableServiceImpl)(nil)

func (s *receivableServiceImpl) CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest) (*domain.Receivable, error) {
	branch := req.Branch
	if branch == "" {
		branch = s.defaultBranch
	}

	if err := s.validateInputs(req.ClientName, branch, req.PriorMonths,
		req.PriorAmount, req.MonthlyCharge, req.PaidCash, req.PaidBankTransfer, req.PaidCard); err != nil {
		s.LogError(ctx, err, "Receivable rejected by validation",
			slog.String("client_name", req.ClientName),
			slog.String("branch", branch))
		return nil, err
	}

	receivable := domain.Receivable{
		ClientName:       strings.TrimSpace(req.ClientName),
		TaxID:            req.TaxID,
		Phone:            req.Phone,
		ContactName:      req.ContactName,
		ServiceType:      req.ServiceType,
		Branch:           branch,
		WorkforceSegment: req.WorkforceSegment,
		PriorCarry: domain.PriorPeriodCarry{
			Months: req.PriorMonths,
			Amount: req.PriorAmount,
		},
		MonthlyCharge: req.MonthlyCharge,
		Paid: domain.PaymentBreakdown{
			Cash:         req.PaidCash,
			BankTransfer: req.PaidBankTransfer,
			Card:         req.PaidCard,
		},
	}
	deriveReceivable(&receivable)

	saved, err := s.receivableRepo.SaveReceivable(ctx, receivable)
	if err != nil {
		s.LogError(ctx, err, "Failed to save receivable",
			slog.String("client_name", receivable.ClientName),
			slog.String("branch", receivable.Branch))
		return nil, err
	}

	s.LogInfo(ctx, "Receivable created successfully",
		slog.Int64("receivable_id", saved.ID),
		slog.String("branch", saved.Branch))
	return saved, nil
}

func (s *receivableServiceImpl) UpdateReceivable(ctx context.Context, receivableID int64, req dto.UpdateReceivableRequest) (*domain.Receivable, error) {
	existing, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find receivable for update",
			slog.Int64("receivable_id", receivableID))
		return nil, err
	}

	merged := *existing
	if req.ClientName != nil {
		merged.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.TaxID != nil {
		merged.TaxID = *req.TaxID
	}
	if req.Phone != nil {
		merged.Phone = *req.Phone
	}
	if req.ContactName != nil {
		merged.ContactName = *req.ContactName
	}
	if req.ServiceType != nil {
		merged.ServiceType = *req.ServiceType
	}
	if req.Branch != nil {
		merged.Branch = *req.Branch
	}
	if req.WorkforceSegment != nil {
		merged.WorkforceSegment = *req.WorkforceSegment
	}
	if req.PriorMonths != nil {
		merged.PriorCarry.Months = *req.PriorMonths
	}
	if req.PriorAmount != nil {
		merged.PriorCarry.Amount = *req.PriorAmount
	}
	if req.MonthlyCharge != nil {
		merged.MonthlyCharge = *req.MonthlyCharge
	}
	if req.PaidCash != nil {
		merged.Paid.Cash = *req.PaidCash
	}
	if req.PaidBankTransfer != nil {
		merged.Paid.BankTransfer = *req.PaidBankTransfer
	}
	if req.PaidCard != nil {
		merged.Paid.Card = *req.PaidCard
	}

	if err := s.validateInputs(merged.ClientName, merged.Branch, merged.PriorCarry.Months,
		merged.PriorCarry.Amount, merged.MonthlyCharge, merged.Paid.Cash, merged.Paid.BankTransfer, merged.Paid.Card); err != nil {
		s.LogError(ctx, err, "Receivable update rejected by validation",
			slog.Int64("receivable_id", receivableID))
		return nil, err
	}
	deriveReceivable(&merged)

	updated, err := s.receivableRepo.UpdateReceivable(ctx, merged)
	if err != nil {
		s.LogError(ctx, err, "Failed to update receivable",
			slog.Int64("receivable_id", receivableID))
		return nil, err
	}

	s.LogInfo(ctx, "Receivable updated successfully",
		slog.Int64("receivable_id", updated.ID))
	return updated, nil
}

func (s *receivableServiceImpl) DeleteReceivable(ctx context.Context, receivableID int64) error {
	if err := s.receivableRepo.DeleteReceivable(ctx, receivableID); err != nil {
		s.LogError(ctx, err, "Failed to delete receivable",
			slog.Int64("receivable_id", receivableID))
		return err
	}
	s.LogInfo(ctx, "Receivable deleted", slog.Int64("receivable_id", receivableID))
	return nil
}

func (s *receivableServiceImpl) GetReceivableByID(ctx context.Context, receivableID int64) (*domain.Receivable, error) {
	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find receivable",
			slog.Int64("receivable_id", receivableID))
		return nil, err
	}
	return receivable, nil
}

func (s *receivableServiceImpl) ListReceivables(ctx context.Context, query domain.LedgerQuery) ([]domain.Receivable, error) {
	if query.Branch != "" && !branchAllowed(s.branches, query.Branch) {
		return nil, fmt.Errorf("unknown branch %q: %w", query.Branch, apperrors.ErrValidation)
	}
	query.Search = strings.TrimSpace(query.Search)
	receivables, err := s.receivableRepo.ListReceivables(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receivables", slog.String("branch", query.Branch))
		return nil, err
	}
	return receivables, nil
}

// validateInputs enforces the rules every receivable write goes through.
// Violations surface as explicit validation errors rather than being silently
// dropped.
func (s *receivableServiceImpl) validateInputs(clientName, branch string, priorMonths int, amounts ...decimal.Decimal) error {
	if strings.TrimSpace(clientName) == "" {
		return fmt.Errorf("client name is required: %w", apperrors.ErrValidation)
	}
	if !branchAllowed(s.branches, branch) {
		return fmt.Errorf("unknown branch %q: %w", branch, apperrors.ErrValidation)
	}
	if priorMonths < 0 {
		return fmt.Errorf("prior months cannot be negative: %w", apperrors.ErrValidation)
	}
	for _, a := range amounts {
		if a.IsNegative() {
			return fmt.Errorf("amounts cannot be negative: %w", apperrors.ErrValidation)
		}
	}
	return nil
}

// deriveReceivable recomputes the derived amounts from the entered inputs.
// Runs on every mutation so the stored values never drift from the formulas.
func deriveReceivable(r *domain.Receivable) {
	r.TotalDue = accounting.TotalDue(r.PriorCarry.Amount, r.MonthlyCharge)
	r.Paid.Total = accounting.PaidTotal(r.Paid.Cash, r.Paid.BankTransfer, r.Paid.Card)
	r.Outstanding = accounting.Outstanding(r.TotalDue, r.Paid.Total)
}
