package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/fin_books_app/internal/core/ports/services"
	"github.com/finbooks/fin_books_app/internal/dto"
	"github.com/finbooks/fin_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for balance and statement queries.
type reportingHandler struct {
	reporting portssvc.ReportingSvc
}

func newReportingHandler(reporting portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reporting: reporting}
}

// RegisterReportingRoutes registers routes related to reports.
func RegisterReportingRoutes(rg *gin.RouterGroup, reporting portssvc.ReportingSvc) {
	h := newReportingHandler(reporting)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/financial-position", h.getFinancialPosition)
		reports.GET("/income-statement", h.getIncomeStatement)
	}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reporting.GetTrialBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getFinancialPosition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reporting.GetFinancialPosition(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate financial position", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate financial position"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.IncomeStatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must not be before 'from'"})
		return
	}

	report, err := h.reporting.GetIncomeStatement(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to generate income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate income statement"})
		return
	}

	c.JSON(http.StatusOK, report)
}
