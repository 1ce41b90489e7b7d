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

// fairHandler handles HTTP requests related to fairs and their clients.
type fairHandler struct {
	fairService portssvc.FairSvcFacade
}

// newFairHandler creates a new fairHandler.
func newFairHandler(fs portssvc.FairSvcFacade) *fairHandler {
	return &fairHandler{fairService: fs}
}

// registerFairRoutes registers fair and nested client routes.
func registerFairRoutes(rg *gin.RouterGroup, fairService portssvc.FairSvcFacade) {
	h := newFairHandler(fairService)

	fairs := rg.Group("/fairs")
	{
		fairs.GET("", h.listFairs)
		fairs.POST("", h.createFair)
		fairs.GET("/:fair_id", h.getFair)
		fairs.POST("/:fair_id/archive", h.toggleArchive)

		clients := fairs.Group("/:fair_id/clients")
		{
			clients.POST("", h.createClient)
			clients.PUT("", h.replaceClients)
			clients.DELETE("/:client_id", h.deleteClient)
		}
	}
}

// listFairs godoc
// @Summary List fairs
// @Description Returns every fair with client and expense counts.
// @Tags fairs
// @Produce json
// @Success 200 {object} dto.ListFairsResponse
// @Failure 500 {object} map[string]string "Failed to list fairs"
// @Router /fairs [get]
func (h *fairHandler) listFairs(c *gin.Context) {
	fairs, err := h.fairService.ListFairs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fairs"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListFairsResponse(fairs))
}

// createFair godoc
// @Summary Create a fair
// @Description Creates a fair; optionally clones client budgets from a source fair.
// @Tags fairs
// @Accept json
// @Produce json
// @Param fair body dto.CreateFairRequest true "Fair details"
// @Success 201 {object} dto.FairResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Clone source not found"
// @Failure 409 {object} map[string]string "Fair already exists"
// @Router /fairs [post]
func (h *fairHandler) createFair(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateFairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFair", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fair, err := h.fairService.CreateFair(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A fair with that name and year already exists"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clone source fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fair"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToFairResponse(fair))
}

// getFair godoc
// @Summary Get a fair
// @Description Returns one fair with its clients and real transactions.
// @Tags fairs
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Success 200 {object} dto.FairDetailResponse
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /fairs/{fair_id} [get]
func (h *fairHandler) getFair(c *gin.Context) {
	fair, err := h.fairService.GetFair(c.Request.Context(), c.Param("fair_id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get fair"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToFairDetailResponse(fair))
}

// toggleArchive godoc
// @Summary Toggle fair archive state
// @Description Flips a fair between active and archived.
// @Tags fairs
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Success 200 {object} dto.FairResponse
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /fairs/{fair_id}/archive [post]
func (h *fairHandler) toggleArchive(c *gin.Context) {
	fair, err := h.fairService.ToggleArchive(c.Request.Context(), c.Param("fair_id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle archive state"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToFairResponse(fair))
}

// createClient godoc
// @Summary Add a client to a fair
// @Description Adds a client with its budget lines; empty expense categories fall back to OTROS.
// @Tags clients
// @Accept json
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} domain.Client
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /fairs/{fair_id}/clients [post]
func (h *fairHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.fairService.CreateClient(c.Request.Context(), c.Param("fair_id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		}
		return
	}
	c.JSON(http.StatusCreated, client)
}

// replaceClients godoc
// @Summary Replace a fair's client set
// @Description Swaps the whole client set at once, the way the budget matrix editor saves.
// @Tags clients
// @Accept json
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Param clients body dto.ReplaceClientsRequest true "Full client set"
// @Success 200 {array} domain.Client
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fair not found"
// @Router /fairs/{fair_id}/clients [put]
func (h *fairHandler) replaceClients(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ReplaceClientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReplaceClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	clients, err := h.fairService.ReplaceClients(c.Request.Context(), c.Param("fair_id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace clients"})
		}
		return
	}
	c.JSON(http.StatusOK, clients)
}

// deleteClient godoc
// @Summary Delete a client
// @Description Removes a client from a fair. Existing distributions keep their entries.
// @Tags clients
// @Produce json
// @Param fair_id path string true "Fair ID"
// @Param client_id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Fair or client not found"
// @Router /fairs/{fair_id}/clients/{client_id} [delete]
func (h *fairHandler) deleteClient(c *gin.Context) {
	err := h.fairService.DeleteClient(c.Request.Context(), c.Param("fair_id"), c.Param("client_id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fair or client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
