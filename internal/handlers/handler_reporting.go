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

// reportingHandler handles HTTP requests for the derived report views.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report and export routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.POST("/comparison", h.comparison)
		reports.POST("/matrix", h.matrix)
	}
	rg.GET("/fairs/:fair_id/summary", h.fairSummary)
	rg.GET("/export", h.export)
}

// comparison godoc
// @Summary Budget-control comparison
// @Description Builds the earned-value comparison table for one fair, or across every non-archived fair when no fair id is given.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.ComparisonRequest true "Comparison parameters"
// @Success 200 {object} dto.ComparisonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /reports/comparison [post]
func (h *reportingHandler) comparison(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Comparison", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.reportingService.Comparison(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build comparison"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// matrix godoc
// @Summary Budget matrix report
// @Description Builds the budgeted-amounts matrix in FAIR or GLOBAL mode, optionally sorted and flattened for export.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.MatrixRequest true "Matrix parameters"
// @Success 200 {object} dto.MatrixResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fair or client not found"
// @Router /reports/matrix [post]
func (h *reportingHandler) matrix(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Matrix", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.reportingService.Matrix(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair or client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build matrix"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// fairSummary godoc
// @Summary Fair summary
// @Description Aggregates a fair's actuals per client plus fair-wide totals.
// @Tags reports
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Success 200 {object} dto.FairSummaryResponse
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /fairs/{fair_id}/summary [get]
func (h *reportingHandler) fairSummary(c *gin.Context) {
	resp, err := h.reportingService.FairSummary(c.Request.Context(), c.Param("fair_id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// export godoc
// @Summary Full dataset backup
// @Description Exports every fair with its clients and transactions as one document.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.BackupResponse
// @Failure 500 {object} map[string]string "Failed to export"
// @Router /export [get]
func (h *reportingHandler) export(c *gin.Context) {
	resp, err := h.reportingService.Backup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export dataset"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
