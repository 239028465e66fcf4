package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
)

// reportingHandler handles HTTP requests for balances and reports.
type reportingHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(bs portssvc.BalanceSvcFacade) *reportingHandler {
	return &reportingHandler{
		balanceService: bs,
	}
}

// registerReportingRoutes registers routes for balances and reports.
func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newReportingHandler(balanceService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
	}

	rg.GET("/accounts/:id/balance", h.getAccountBalance)
	rg.GET("/parties/:id/balance", h.getPartyBalance)
	rg.GET("/parties/:id/statement", h.getPartyStatement)
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Returns one account's aggregate activity and debit-minus-credit balance
// @Tags reports
// @Produce  json
// @Param   id path string true "Account code"
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountCode := c.Param("id")

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	row, err := h.balanceService.GetAccountBalance(c.Request.Context(), accountCode, params.AsOf)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute account balance", slog.String("account_code", accountCode), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountCode: row.AccountCode,
		AccountName: row.AccountName,
		Category:    string(row.Category),
		TotalDebit:  row.Debit,
		TotalCredit: row.Credit,
		Balance:     row.Balance,
		AsOf:        params.AsOf,
	})
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Per-account debit/credit totals for every account with activity
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tb, err := h.balanceService.GetTrialBalance(c.Request.Context(), params.AsOf)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb, params.AsOf))
}

// getPartyBalance godoc
// @Summary Get a party balance
// @Description Returns the signed balance for one party over an optional period
// @Tags reports
// @Produce  json
// @Param   id path string true "Party ID"
// @Param   from query string false "Period start (YYYY-MM-DD)"
// @Param   to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.PartyBalanceResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /parties/{id}/balance [get]
func (h *reportingHandler) getPartyBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	party, err := h.balanceService.GetPartyBalance(c.Request.Context(), partyID, params.From, params.To)
	if err != nil {
		if errors.Is(err, services.ErrPartyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error("Failed to compute party balance", slog.String("party_id", partyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PartyBalanceResponse{
		PartyID:   party.PartyID,
		PartyType: string(party.PartyType),
		Name:      party.Name,
		Balance:   party.Balance,
		From:      params.From,
		To:        params.To,
	})
}

// getPartyStatement godoc
// @Summary Get a party statement
// @Description Chronological postings for one party with a running balance
// @Tags reports
// @Produce  json
// @Param   id path string true "Party ID"
// @Param   from query string false "Period start (YYYY-MM-DD)"
// @Param   to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.PartyStatementResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Security BearerAuth
// @Router /parties/{id}/statement [get]
func (h *reportingHandler) getPartyStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	party, statement, err := h.balanceService.GetPartyStatement(c.Request.Context(), partyID, params.From, params.To)
	if err != nil {
		if errors.Is(err, services.ErrPartyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error("Failed to build party statement", slog.String("party_id", partyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyStatementResponse(party, statement))
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description Hierarchical assets, liabilities and equity as of a date
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 500 {object} map[string]string "Failed to build balance sheet"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	bs, err := h.balanceService.GetBalanceSheet(c.Request.Context(), params.AsOf)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(bs, params.AsOf))
}

// getIncomeStatement godoc
// @Summary Get the income statement
// @Description Hierarchical revenue and expenses over a period
// @Tags reports
// @Produce  json
// @Param   from query string false "Period start (YYYY-MM-DD)"
// @Param   to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 500 {object} map[string]string "Failed to build income statement"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	is, err := h.balanceService.GetIncomeStatement(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to build income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build income statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(is, params.From, params.To))
}
