package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	portssvc "github.com/demostra/feria_budget_app/internal/core/ports/services"
	"github.com/demostra/feria_budget_app/internal/dto"
	"github.com/demostra/feria_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests for real transaction imputation.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers expense routes nested under a fair.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/fairs/:fair_id/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.POST("", h.imputeExpense)
		expenses.POST("/preview", h.previewDistribution)
		expenses.DELETE("/:expense_id", h.deleteExpense)
	}
}

// listExpenses godoc
// @Summary List a fair's real transactions
// @Tags expenses
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /fairs/{fair_id}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), c.Param("fair_id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ListExpensesResponse{Expenses: expenses})
}

// imputeExpense godoc
// @Summary Impute a real transaction
// @Description Records (or edits, when an id is present) a transaction, distributing its amount over the selected clients. Warnings return 409 until the request is resubmitted with confirm=true.
// @Tags expenses
// @Accept json
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Param expense body dto.ImputeExpenseRequest true "Imputation details"
// @Success 201 {object} dto.ImputeExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fair or expense not found"
// @Failure 409 {object} dto.ImputeExpenseResponse "Warnings require confirmation"
// @Router /fairs/{fair_id}/expenses [post]
func (h *expenseHandler) imputeExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ImputeExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImputeExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.expenseService.ImputeExpense(c.Request.Context(), c.Param("fair_id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConfirmationRequired) {
			// The response carries the warnings the operator must confirm.
			c.JSON(http.StatusConflict, resp)
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair or expense not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to impute expense"})
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// previewDistribution godoc
// @Summary Preview a distribution
// @Description Computes how an amount would split across the selected clients without persisting anything.
// @Tags expenses
// @Accept json
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Param expense body dto.ImputeExpenseRequest true "Imputation details"
// @Success 200 {object} dto.DistributionPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /fairs/{fair_id}/expenses/preview [post]
func (h *expenseHandler) previewDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ImputeExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewDistribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	preview, err := h.expenseService.PreviewDistribution(c.Request.Context(), c.Param("fair_id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview distribution"})
		}
		return
	}
	c.JSON(http.StatusOK, preview)
}

// deleteExpense godoc
// @Summary Delete a real transaction
// @Tags expenses
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Param expense_id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Fair or expense not found"
// @Router /fairs/{fair_id}/expenses/{expense_id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("fair_id"), c.Param("expense_id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair or expense not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
