package dto

import (
	"time"

	"github.com/demostra/feria_budget_app/internal/core/domain"
)

// --- Fair DTOs ---

// CreateFairRequest defines data for creating a new fair.
type CreateFairRequest struct {
	Name string    `json:"name" binding:"required"`
	Date time.Time `json:"date" binding:"required"`
	// CloneFromFairID optionally seeds the new fair with a copy of an existing
	// fair's client budgets (real expenses are never cloned).
	CloneFromFairID string `json:"cloneFromFairId,omitempty"`
}

// FairResponse defines data returned for a fair.
type FairResponse struct {
	FairID       string            `json:"id"`
	Name         string            `json:"name"`
	Status       domain.FairStatus `json:"status"`
	Date         time.Time         `json:"date"`
	ClientCount  int               `json:"clientCount"`
	ExpenseCount int               `json:"expenseCount"`
}

// ToFairResponse converts domain.Fair to DTO.
func ToFairResponse(f *domain.Fair) FairResponse {
	return FairResponse{
		FairID:       f.FairID,
		Name:         f.Name,
		Status:       f.Status,
		Date:         f.Date,
		ClientCount:  len(f.Clients),
		ExpenseCount: len(f.RealExpenses),
	}
}

// ListFairsResponse wraps a list of fairs.
type ListFairsResponse struct {
	Fairs []FairResponse `json:"fairs"`
}

// ToListFairsResponse converts a slice of domain.Fair to DTO.
func ToListFairsResponse(fairs []domain.Fair) ListFairsResponse {
	resp := ListFairsResponse{Fairs: make([]FairResponse, len(fairs))}
	for i := range fairs {
		resp.Fairs[i] = ToFairResponse(&fairs[i])
	}
	return resp
}

// FairDetailResponse returns a fair with its full client and expense detail.
type FairDetailResponse struct {
	FairResponse
	Clients  []domain.Client      `json:"clients"`
	Expenses []domain.RealExpense `json:"expenses"`
}

// ToFairDetailResponse converts domain.Fair to its detail DTO.
func ToFairDetailResponse(f *domain.Fair) FairDetailResponse {
	return FairDetailResponse{
		FairResponse: ToFairResponse(f),
		Clients:      f.Clients,
		Expenses:     f.RealExpenses,
	}
}
