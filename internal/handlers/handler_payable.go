package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
	"github.com/BalansDev/branch_accounting_app/internal/middleware"
	"github.com/BalansDev/branch_accounting_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// payableHandler handles HTTP requests for the payables ledger.
type payableHandler struct {
	payableService portssvc.PayableSvcFacade
}

// registerPayableRoutes registers routes related to payables.
func registerPayableRoutes(rg *gin.RouterGroup, payableService portssvc.PayableSvcFacade) {
	h := &payableHandler{payableService: payableService}

	payables := rg.Group("/payables")
	{
		payables.POST("", h.createPayable)
		payables.GET("", h.listPayables)
		payables.GET("/export", h.exportPayables)
		payables.POST("/rollover", h.runRollover)
		payables.GET("/:id", h.getPayable)
		payables.PUT("/:id", h.updatePayable)
		payables.DELETE("/:id", h.deletePayable)
	}
}

// createPayable godoc
// @Summary Create a payable
// @Description Creates a new payable entry. Derived amounts are computed server-side.
// @Tags payables
// @Accept json
// @Produce json
// @Param payable body dto.CreatePayableRequest true "Payable details"
// @Success 201 {object} dto.PayableResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables [post]
func (h *payableHandler) createPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPayable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	payable, err := h.payableService.CreatePayable(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create payable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create payable"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToPayableResponse(payable))
}

// getPayable godoc
// @Summary Get a payable by ID
// @Tags payables
// @Produce json
// @Param id path int true "Payable ID"
// @Success 200 {object} dto.PayableResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/{id} [get]
func (h *payableHandler) getPayable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	payable, err := h.payableService.GetPayableByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve payable"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// listPayables godoc
// @Summary List payables
// @Description Lists payables newest-first, optionally filtered by branch.
// @Tags payables
// @Produce json
// @Param branch query string false "Branch name"
// @Param category query string false "Expense category"
// @Param search query string false "Free-text search over the payee name"
// @Param limit query int false "Limit number of results (0 = all)"
// @Param offset query int false "Offset for pagination"
// @Success 200 {array} dto.PayableResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables [get]
func (h *payableHandler) listPayables(c *gin.Context) {
	var params dto.ListPayablesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	payables, err := h.payableService.ListPayables(c.Request.Context(), domain.LedgerQuery{
		Branch:   params.Branch,
		Category: params.Category,
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payables"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPayableResponse(payables))
}

// updatePayable godoc
// @Summary Update a payable
// @Description Applies a partial update and recomputes the derived amounts.
// @Tags payables
// @Accept json
// @Produce json
// @Param id path int true "Payable ID"
// @Param payable body dto.UpdatePayableRequest true "Fields to update"
// @Success 200 {object} dto.PayableResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/{id} [put]
func (h *payableHandler) updatePayable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	payable, err := h.payableService.UpdatePayable(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update payable"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

// deletePayable godoc
// @Summary Delete a payable
// @Tags payables
// @Produce json
// @Param id path int true "Payable ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/{id} [delete]
func (h *payableHandler) deletePayable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.payableService.DeletePayable(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete payable"})
		return
	}

	c.Status(http.StatusNoContent)
}

// runRollover godoc
// @Summary Run the monthly rollover
// @Description Folds each payable's monthly charge into its prior balance for the current month. Idempotent within a month.
// @Tags payables
// @Produce json
// @Success 200 {object} dto.RolloverResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/rollover [post]
func (h *payableHandler) runRollover(c *gin.Context) {
	result, err := h.payableService.RunRollover(c.Request.Context(), time.Now())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Rollover run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to run rollover"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRolloverResponse(result))
}

// exportPayables godoc
// @Summary Export payables as CSV
// @Description Downloads the payables ledger as CSV. Text columns are always quoted.
// @Tags payables
// @Produce text/csv
// @Param branch query string false "Branch name"
// @Param category query string false "Expense category"
// @Param search query string false "Free-text search over the payee name"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/export [get]
func (h *payableHandler) exportPayables(c *gin.Context) {
	query := domain.LedgerQuery{
		Branch:   c.Query("branch"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	payables, err := h.payableService.ListPayables(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export payables"})
		return
	}

	var b utils.CSVBuilder
	b.WriteRow(
		utils.CSVText("Date"), utils.CSVText("Payee"), utils.CSVText("Branch"), utils.CSVText("Category"),
		utils.CSVText("Prior Balance"), utils.CSVText("Monthly Charge"), utils.CSVText("Total Charged"),
		utils.CSVText("Amount Paid"), utils.CSVText("Outstanding Debt"), utils.CSVText("Outstanding Advance"),
	)
	for i := range payables {
		p := &payables[i]
		b.WriteRow(
			utils.CSVText(p.EntryDate),
			utils.CSVText(p.PayeeName),
			utils.CSVText(p.Branch),
			utils.CSVText(p.Category),
			p.PriorBalance.String(),
			p.MonthlyCharge.String(),
			p.TotalCharged.String(),
			p.AmountPaid.String(),
			p.OutstandingDebt.String(),
			p.OutstandingAdvance.String(),
		)
	}

	filename := "payables_" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(b.String()))
}
