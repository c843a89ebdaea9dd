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

// balanceHandler handles HTTP requests for the per-branch balance report.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// registerBalanceRoutes registers the balance report routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: balanceService}

	balance := rg.Group("/balance")
	{
		balance.GET("", h.getBalanceReport)
		balance.GET("/export", h.exportBalanceReport)
	}
}

func (h *balanceHandler) loadReport(c *gin.Context) (*domain.BalanceReport, bool) {
	var params dto.BalanceReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return nil, false
	}

	report, err := h.balanceService.GetBalanceReport(c.Request.Context(), domain.BalanceFilter{
		Branch: params.Branch,
		From:   params.From,
		To:     params.To,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return nil, false
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to build balance report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build balance report"})
		return nil, false
	}
	return report, true
}

// getBalanceReport godoc
// @Summary Get the per-branch balance report
// @Description Aggregates both ledgers into one row per active branch plus a totals row.
// @Tags balance
// @Produce json
// @Param branch query string false "Branch name or 'all'" default(all)
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.BalanceReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /balance [get]
func (h *balanceHandler) getBalanceReport(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceReportResponse(report))
}

// exportBalanceReport godoc
// @Summary Export the balance report as CSV
// @Description Downloads the per-branch balance report as CSV. Text columns are always quoted.
// @Tags balance
// @Produce text/csv
// @Param branch query string false "Branch name or 'all'" default(all)
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /balance/export [get]
func (h *balanceHandler) exportBalanceReport(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}

	var b utils.CSVBuilder
	b.WriteRow(
		utils.CSVText("Branch"), utils.CSVText("Prior Carry"), utils.CSVText("Monthly Charge"),
		utils.CSVText("Total Due"), utils.CSVText("Cash"), utils.CSVText("Bank Transfer"), utils.CSVText("Card"),
		utils.CSVText("Paid Total"), utils.CSVText("Outstanding"), utils.CSVText("Monthly Expense"),
		utils.CSVText("Net Profit"),
	)
	writeRow := func(row *domain.BalanceRow) {
		b.WriteRow(
			utils.CSVText(row.Branch),
			row.PriorCarry.String(),
			row.MonthlyCharge.String(),
			row.TotalDue.String(),
			row.Paid.Cash.String(),
			row.Paid.BankTransfer.String(),
			row.Paid.Card.String(),
			row.Paid.Total.String(),
			row.Outstanding.String(),
			row.MonthlyExpense.String(),
			row.NetProfit.String(),
		)
	}
	for i := range report.Rows {
		writeRow(&report.Rows[i])
	}
	writeRow(&report.Totals)

	filename := "balance_report_" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(b.String()))
}
