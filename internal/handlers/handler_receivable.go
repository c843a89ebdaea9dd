package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
	"github.com/BalansDev/branch_accounting_app/internal/middleware"
	"github.com/BalansDev/branch_accounting_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// receivableHandler handles HTTP requests for the receivables ledger.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

// RegisterReceivableRoutes registers routes related to receivables.
func RegisterReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := &receivableHandler{receivableService: receivableService}

	receivables := rg.Group("/receivables")
	{
		receivables.POST("", h.createReceivable)
		receivables.GET("", h.listReceivables)
		receivables.GET("/export", h.exportReceivables)
		receivables.GET("/:id", h.getReceivable)
		receivables.PUT("/:id", h.updateReceivable)
		receivables.DELETE("/:id", h.deleteReceivable)
	}
}

// parseIDParam reads the numeric :id path parameter.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid ID"})
		return 0, false
	}
	return id, true
}

// createReceivable godoc
// @Summary Create a receivable
// @Description Creates a new client receivable entry. Derived amounts are computed server-side.
// @Tags receivables
// @Accept json
// @Produce json
// @Param receivable body dto.CreateReceivableRequest true "Receivable details"
// @Success 201 {object} dto.ReceivableResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receivables [post]
func (h *receivableHandler) createReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createReceivable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	receivable, err := h.receivableService.CreateReceivable(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create receivable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create receivable"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceivableResponse(receivable))
}

// getReceivable godoc
// @Summary Get a receivable by ID
// @Tags receivables
// @Produce json
// @Param id path int true "Receivable ID"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receivables/{id} [get]
func (h *receivableHandler) getReceivable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	receivable, err := h.receivableService.GetReceivableByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Receivable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve receivable"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// listReceivables godoc
// @Summary List receivables
// @Description Lists receivables newest-first, optionally filtered by branch.
// @Tags receivables
// @Produce json
// @Param branch query string false "Branch name"
// @Param search query string false "Free-text search over client, contact and tax id"
// @Param limit query int false "Limit number of results (0 = all)"
// @Param offset query int false "Offset for pagination"
// @Success 200 {array} dto.ReceivableResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receivables [get]
func (h *receivableHandler) listReceivables(c *gin.Context) {
	var params dto.ListReceivablesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	receivables, err := h.receivableService.ListReceivables(c.Request.Context(), domain.LedgerQuery{
		Branch: params.Branch,
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list receivables"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceivableResponse(receivables))
}

// updateReceivable godoc
// @Summary Update a receivable
// @Description Applies a partial update and recomputes the derived amounts.
// @Tags receivables
// @Accept json
// @Produce json
// @Param id path int true "Receivable ID"
// @Param receivable body dto.UpdateReceivableRequest true "Fields to update"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receivables/{id} [put]
func (h *receivableHandler) updateReceivable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	receivable, err := h.receivableService.UpdateReceivable(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Receivable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update receivable"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// deleteReceivable godoc
// @Summary Delete a receivable
// @Tags receivables
// @Produce json
// @Param id path int true "Receivable ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receivables/{id} [delete]
func (h *receivableHandler) deleteReceivable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.receivableService.DeleteReceivable(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Receivable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete receivable"})
		return
	}

	c.Status(http.StatusNoContent)
}

// exportReceivables godoc
// @Summary Export receivables as CSV
// @Description Downloads the receivables ledger as CSV. Text columns are always quoted.
// @Tags receivables
// @Produce text/csv
// @Param branch query string false "Branch name"
// @Param search query string false "Free-text search over client, contact and tax id"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receivables/export [get]
func (h *receivableHandler) exportReceivables(c *gin.Context) {
	query := domain.LedgerQuery{Branch: c.Query("branch"), Search: c.Query("search")}

	receivables, err := h.receivableService.ListReceivables(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export receivables"})
		return
	}

	var b utils.CSVBuilder
	b.WriteRow(
		utils.CSVText("Client"), utils.CSVText("Tax ID"), utils.CSVText("Phone"), utils.CSVText("Contact"),
		utils.CSVText("Service"), utils.CSVText("Branch"), utils.CSVText("Segment"),
		utils.CSVText("Prior Months"), utils.CSVText("Prior Amount"), utils.CSVText("Monthly Charge"),
		utils.CSVText("Total Due"), utils.CSVText("Cash"), utils.CSVText("Bank Transfer"), utils.CSVText("Card"),
		utils.CSVText("Paid Total"), utils.CSVText("Outstanding"),
	)
	for i := range receivables {
		r := &receivables[i]
		b.WriteRow(
			utils.CSVText(r.ClientName),
			utils.CSVText(r.TaxID),
			utils.CSVText(r.Phone),
			utils.CSVText(r.ContactName),
			utils.CSVText(r.ServiceType),
			utils.CSVText(r.Branch),
			utils.CSVText(r.WorkforceSegment),
			strconv.Itoa(r.PriorCarry.Months),
			r.PriorCarry.Amount.String(),
			r.MonthlyCharge.String(),
			r.TotalDue.String(),
			r.Paid.Cash.String(),
			r.Paid.BankTransfer.String(),
			r.Paid.Card.String(),
			r.Paid.Total.String(),
			r.Outstanding.String(),
		)
	}

	filename := "receivables_" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(b.String()))
}
