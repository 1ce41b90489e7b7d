package services

import (
	"context"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for real transactions.
type ExpenseReaderSvc interface {
	// ListExpenses retrieves a fair's real transactions.
	ListExpenses(ctx context.Context, fairID string) ([]domain.RealExpense, error)

	// PreviewDistribution computes the split an imputation would produce
	// without persisting anything.
	PreviewDistribution(ctx context.Context, fairID string, req dto.ImputeExpenseRequest) (*dto.DistributionPreviewResponse, error)
}

// ExpenseWriterSvc defines write operations for real transactions.
type ExpenseWriterSvc interface {
	// ImputeExpense records a transaction, distributing its amount over the
	// selected clients. When the request carries an id the matching
	// transaction is replaced. Suspicious inputs return
	// apperrors.ErrConfirmationRequired until the caller confirms.
	ImputeExpense(ctx context.Context, fairID string, req dto.ImputeExpenseRequest) (*dto.ImputeExpenseResponse, error)

	// DeleteExpense removes a transaction from a fair.
	DeleteExpense(ctx context.Context, fairID string, expenseID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
