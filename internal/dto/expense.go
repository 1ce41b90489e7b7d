package dto

import (
	"time"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Expense imputation DTOs ---

// ImputeExpenseRequest defines data for recording (or editing) a real
// transaction against a fair. When ExpenseID is set an existing transaction
// is replaced in place.
type ImputeExpenseRequest struct {
	ExpenseID         string            `json:"id,omitempty"`
	Type              string            `json:"type" binding:"required,oneof=EXPENSE INCOME"`
	Category          string            `json:"category" binding:"required"`
	Provider          string            `json:"provider"`
	Concept           string            `json:"concept" binding:"required"`
	Date              time.Time         `json:"date" binding:"required"`
	TotalAmount       decimal.Decimal   `json:"totalAmount" binding:"required"`
	SelectedClientIDs []string          `json:"selectedClientIds"`
	DistributionMode  string            `json:"distributionMode" binding:"omitempty,oneof=PROPORTIONAL MANUAL"`
	// ManualAmounts are raw operator input, one string per selected client.
	// Unparsable entries degrade to zero rather than failing the request.
	ManualAmounts map[string]string `json:"manualAmounts,omitempty"`
	// Confirm accepts the warnings of a previous attempt and forces the save.
	Confirm bool `json:"confirm"`
}

// Warning codes attached to an imputation.
const (
	WarningUnbalanced  = "UNBALANCED_DISTRIBUTION"
	WarningSignAnomaly = "SIGN_ANOMALY"
)

// ImputationWarning flags a suspicious but acceptable imputation.
type ImputationWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImputeExpenseResponse returns the stored transaction plus any warnings the
// caller confirmed through.
type ImputeExpenseResponse struct {
	Expense  domain.RealExpense  `json:"expense"`
	Warnings []ImputationWarning `json:"warnings,omitempty"`
}

// DistributionPreviewResponse shows how an amount would split before saving.
type DistributionPreviewResponse struct {
	Distribution map[string]decimal.Decimal `json:"distribution"`
	Total        decimal.Decimal            `json:"total"`
	Diff         decimal.Decimal            `json:"diff"`
	Balanced     bool                       `json:"balanced"`
	Warnings     []ImputationWarning        `json:"warnings,omitempty"`
}

// ListExpensesResponse wraps a fair's real transactions.
type ListExpensesResponse struct {
	Expenses []domain.RealExpense `json:"expenses"`
}
