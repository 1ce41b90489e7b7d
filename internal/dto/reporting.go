package dto

import (
	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/core/ledger"
	"github.com/demostra/feria_budget_app/internal/core/report"
	"github.com/shopspring/decimal"
)

// --- Reporting DTOs ---

// ComparisonRequest parameterizes the budget-control comparison. An empty
// FairID compares across every non-archived fair.
type ComparisonRequest struct {
	FairID    string   `json:"fairId,omitempty"`
	ClientIDs []string `json:"clientIds,omitempty"`
	// ExecutionPcts maps category label to percent complete (0-100).
	ExecutionPcts      map[string]decimal.Decimal `json:"executionPcts,omitempty"`
	AlwaysShowStandard bool                       `json:"alwaysShowStandard"`
	Flat               bool                       `json:"flat"`
}

// ComparisonResponse returns the comparison, flattened for export on demand.
type ComparisonResponse struct {
	Comparison *report.Comparison `json:"comparison,omitempty"`
	Table      *report.FlatTable  `json:"table,omitempty"`
}

// MatrixColumnRequest selects one client column for a comparative matrix.
type MatrixColumnRequest struct {
	FairID   string `json:"fairId" binding:"required"`
	ClientID string `json:"clientId" binding:"required"`
}

// MatrixRequest parameterizes the budget matrix report. FAIR mode takes a
// fair id and reports all its clients; GLOBAL mode takes explicit columns.
type MatrixRequest struct {
	Mode    string                `json:"mode" binding:"required,oneof=FAIR GLOBAL"`
	FairID  string                `json:"fairId,omitempty"`
	Columns []MatrixColumnRequest `json:"columns,omitempty" binding:"omitempty,dive"`
	SortBy  string                `json:"sortBy,omitempty"`
	SortDir string                `json:"sortDir,omitempty" binding:"omitempty,oneof=asc desc"`
	Flat    bool                  `json:"flat"`
}

// MatrixResponse returns the matrix, flattened for export on demand.
type MatrixResponse struct {
	Matrix *report.Matrix    `json:"matrix,omitempty"`
	Table  *report.FlatTable `json:"table,omitempty"`
}

// ClientSummaryResponse is one client's actuals inside a fair summary.
type ClientSummaryResponse struct {
	ClientID string         `json:"clientId"`
	Name     string         `json:"name"`
	Actuals  ledger.Actuals `json:"actuals"`
}

// FairSummaryResponse is the per-fair dashboard: budget versus actuals by
// client, plus fair-wide totals.
type FairSummaryResponse struct {
	FairID      string                  `json:"fairId"`
	Name        string                  `json:"name"`
	Clients     []ClientSummaryResponse `json:"clients"`
	BudgetTotal decimal.Decimal         `json:"budgetTotal"`
	IncomeTotal decimal.Decimal         `json:"incomeTotal"`
	RealTotal   decimal.Decimal         `json:"realTotal"`
	Profit      decimal.Decimal         `json:"profit"`
}

// BackupResponse is the full dataset export.
type BackupResponse struct {
	Dataset *domain.Dataset `json:"dataset"`
}
