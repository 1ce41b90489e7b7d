package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	"github.com/demostra/feria_budget_app/internal/core/distribution"
	"github.com/demostra/feria_budget_app/internal/core/domain"
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	portssvc "github.com/demostra/feria_budget_app/internal/core/ports/services"
	"github.com/demostra/feria_budget_app/internal/dto"
	"github.com/google/uuid"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	datasetRepo portsrepo.DatasetRepository
}

// NewExpenseService creates a new expense service with the provided dependencies
func NewExpenseService(datasetRepo portsrepo.DatasetRepository) portssvc.ExpenseSvcFacade {
	return &expenseService{datasetRepo: datasetRepo}
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// ListExpenses retrieves a fair's real transactions
func (s *expenseService) ListExpenses(ctx context.Context, fairID string) ([]domain.RealExpense, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}
	if fair.RealExpenses == nil {
		return []domain.RealExpense{}, nil
	}
	return fair.RealExpenses, nil
}

// PreviewDistribution computes the split an imputation would produce without
// persisting anything.
func (s *expenseService) PreviewDistribution(ctx context.Context, fairID string, req dto.ImputeExpenseRequest) (*dto.DistributionPreviewResponse, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	dreq := distributionRequest(req)
	dist := distribution.Distribute(fair.Clients, dreq)

	return &dto.DistributionPreviewResponse{
		Distribution: dist,
		Total:        dist.Total(),
		Diff:         distribution.Diff(req.TotalAmount, dist),
		Balanced:     distribution.IsBalanced(req.TotalAmount, dist),
		Warnings:     imputationWarnings(dreq, dist),
	}, nil
}

// ImputeExpense records a transaction against a fair. A request carrying an id
// edits the matching transaction in place; otherwise a new one is created.
// When warnings are present and the request is not confirmed, the response
// still carries the warnings next to apperrors.ErrConfirmationRequired so the
// handler can show them.
func (s *expenseService) ImputeExpense(ctx context.Context, fairID string, req dto.ImputeExpenseRequest) (*dto.ImputeExpenseResponse, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	dreq := distributionRequest(req)
	dist := distribution.Distribute(fair.Clients, dreq)

	warnings := imputationWarnings(dreq, dist)
	if len(warnings) > 0 && !req.Confirm {
		return &dto.ImputeExpenseResponse{Warnings: warnings},
			fmt.Errorf("imputation has %d warning(s): %w", len(warnings), apperrors.ErrConfirmationRequired)
	}

	now := time.Now()
	var stored *domain.RealExpense
	if req.ExpenseID != "" {
		stored = fair.FindExpense(req.ExpenseID)
		if stored == nil {
			return nil, fmt.Errorf("expense %s: %w", req.ExpenseID, apperrors.ErrNotFound)
		}
		stored.Type = dreq.Type
		stored.Category = dreq.Category
		stored.Provider = req.Provider
		stored.Concept = req.Concept
		stored.Date = req.Date
		stored.TotalAmount = req.TotalAmount
		stored.Distribution = dist
		stored.DistributionMode = dreq.Mode
		stored.LastUpdatedAt = now
	} else {
		expense := domain.RealExpense{
			ExpenseID:        uuid.NewString(),
			Type:             dreq.Type,
			Category:         dreq.Category,
			Provider:         req.Provider,
			Concept:          req.Concept,
			Date:             req.Date,
			TotalAmount:      req.TotalAmount,
			Distribution:     dist,
			DistributionMode: dreq.Mode,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		fair.RealExpenses = append(fair.RealExpenses, expense)
		stored = &fair.RealExpenses[len(fair.RealExpenses)-1]
	}

	if err := s.datasetRepo.Save(ctx, ds); err != nil {
		s.LogError(ctx, err, "Failed to save dataset after imputation", slog.String("fair_id", fairID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense imputed",
		slog.String("fair_id", fairID),
		slog.String("expense_id", stored.ExpenseID),
		slog.String("type", string(stored.Type)),
		slog.Int("warnings", len(warnings)))
	return &dto.ImputeExpenseResponse{Expense: *stored, Warnings: warnings}, nil
}

// DeleteExpense removes a transaction from a fair
func (s *expenseService) DeleteExpense(ctx context.Context, fairID string, expenseID string) error {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	idx := -1
	for i := range fair.RealExpenses {
		if fair.RealExpenses[i].ExpenseID == expenseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	fair.RealExpenses = append(fair.RealExpenses[:idx], fair.RealExpenses[idx+1:]...)

	if err := s.datasetRepo.Save(ctx, ds); err != nil {
		s.LogError(ctx, err, "Failed to save dataset after expense deletion", slog.String("fair_id", fairID))
		return err
	}

	s.LogInfo(ctx, "Expense deleted",
		slog.String("fair_id", fairID),
		slog.String("expense_id", expenseID))
	return nil
}

// distributionRequest maps the transport payload onto the engine's input.
func distributionRequest(req dto.ImputeExpenseRequest) distribution.Request {
	mode := domain.DistributionProportional
	if req.DistributionMode == string(domain.DistributionManual) {
		mode = domain.DistributionManual
	}
	return distribution.Request{
		Type:              domain.TransactionType(req.Type),
		Category:          domain.NormalizeCategory(req.Category),
		TotalAmount:       req.TotalAmount,
		SelectedClientIDs: req.SelectedClientIDs,
		Mode:              mode,
		ManualAmounts:     req.ManualAmounts,
	}
}

// imputationWarnings flags sign anomalies and imbalance. Warnings gate
// persistence behind the confirm flag; they never reject the transaction.
func imputationWarnings(req distribution.Request, dist domain.Distribution) []dto.ImputationWarning {
	var warnings []dto.ImputationWarning

	if req.TotalAmount.IsNegative() {
		msg := "negative amount on an EXPENSE records a provider refund"
		if req.Type == domain.TypeIncome {
			msg = "negative amount on an INCOME records a credit note"
		}
		warnings = append(warnings, dto.ImputationWarning{
			Code:    dto.WarningSignAnomaly,
			Message: msg,
		})
	}

	if !distribution.IsBalanced(req.TotalAmount, dist) {
		diff := distribution.Diff(req.TotalAmount, dist)
		warnings = append(warnings, dto.ImputationWarning{
			Code:    dto.WarningUnbalanced,
			Message: fmt.Sprintf("distributed total differs from the amount by %s", diff.StringFixed(2)),
		})
	}

	return warnings
}
