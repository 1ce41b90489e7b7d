package dto

import (
	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Client DTOs ---

// IncomeLineRequest is one offered income line of a client budget.
type IncomeLineRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseLineRequest is one estimated expense line of a client budget.
type ExpenseLineRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Estimated   decimal.Decimal `json:"estimated"`
}

// BudgetRequest carries the full budget of a client.
type BudgetRequest struct {
	Income   []IncomeLineRequest  `json:"income"`
	Expenses []ExpenseLineRequest `json:"expenses"`
}

// CreateClientRequest defines data for adding a client to a fair.
type CreateClientRequest struct {
	// ClientID is ignored on create. On a whole-set replace a present id keeps
	// the client's identity so existing expense distributions stay attached.
	ClientID string              `json:"id,omitempty"`
	Name     string              `json:"name" binding:"required"`
	Status   domain.ClientStatus `json:"status" binding:"omitempty,oneof=Pending Active Archived"`
	Budget   BudgetRequest       `json:"budget"`
}

// ReplaceClientsRequest replaces a fair's whole client set at once, the way
// the budget matrix editor saves.
type ReplaceClientsRequest struct {
	Clients []CreateClientRequest `json:"clients" binding:"required,dive"`
}
