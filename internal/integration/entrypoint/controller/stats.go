// Package controller contains the gin HTTP handlers.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/stats"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// StatsController handles dashboard aggregate endpoints.
type StatsController struct {
	balanceUseCase        *stats.GetBalanceUseCase
	historyUseCase        *stats.GetHistoryUseCase
	periodsUseCase        *stats.GetHistoryPeriodsUseCase
	categoryTotalsUseCase *stats.GetCategoryTotalsUseCase
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(
	balanceUseCase *stats.GetBalanceUseCase,
	historyUseCase *stats.GetHistoryUseCase,
	periodsUseCase *stats.GetHistoryPeriodsUseCase,
	categoryTotalsUseCase *stats.GetCategoryTotalsUseCase,
) *StatsController {
	return &StatsController{
		balanceUseCase:        balanceUseCase,
		historyUseCase:        historyUseCase,
		periodsUseCase:        periodsUseCase,
		categoryTotalsUseCase: categoryTotalsUseCase,
	}
}

// Balance handles GET /api/v1/stats/balance.
func (sc *StatsController) Balance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidDateRange),
		})
		return
	}

	output, err := sc.balanceUseCase.Execute(c.Request.Context(), stats.GetBalanceInput{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		sc.handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Income:  output.Income.StringFixed(2),
		Expense: output.Expense.StringFixed(2),
		Balance: output.Income.Sub(output.Expense).StringFixed(2),
	})
}

// History handles GET /api/v1/stats/history.
func (sc *StatsController) History(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid 'year'"})
		return
	}

	// Month is zero-based and only meaningful for the month timeframe.
	month := 0
	if raw := c.Query("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "invalid 'month'",
				Code:  string(domainerror.ErrCodeInvalidHistoryMonth),
			})
			return
		}
	}

	output, err := sc.historyUseCase.Execute(c.Request.Context(), stats.GetHistoryInput{
		UserID:    userID,
		Timeframe: entity.Timeframe(c.Query("timeframe")),
		Year:      year,
		Month:     month,
	})
	if err != nil {
		sc.handleStatsError(c, err)
		return
	}

	points := make([]dto.HistoryPointResponse, 0, len(output.Points))
	for _, p := range output.Points {
		points = append(points, dto.HistoryPointResponse{
			Year:    p.Year,
			Month:   p.Month,
			Day:     p.Day,
			Income:  p.Income.StringFixed(2),
			Expense: p.Expense.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{Points: points})
}

// Periods handles GET /api/v1/stats/periods.
func (sc *StatsController) Periods(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	output, err := sc.periodsUseCase.Execute(c.Request.Context(), stats.GetHistoryPeriodsInput{
		UserID: userID,
	})
	if err != nil {
		sc.handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HistoryPeriodsResponse{Years: output.Years})
}

// CategoryTotals handles GET /api/v1/stats/categories.
func (sc *StatsController) CategoryTotals(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidDateRange),
		})
		return
	}

	output, err := sc.categoryTotalsUseCase.Execute(c.Request.Context(), stats.GetCategoryTotalsInput{
		UserID: userID,
		From:   from,
		To:     to,
		Type:   entity.TransactionType(c.Query("type")),
	})
	if err != nil {
		sc.handleStatsError(c, err)
		return
	}

	totals := make([]dto.CategoryTotalResponse, 0, len(output.Totals))
	for _, t := range output.Totals {
		totals = append(totals, dto.CategoryTotalResponse{
			Category:     t.Category,
			CategoryIcon: t.CategoryIcon,
			Type:         string(t.Type),
			Total:        t.Total.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, dto.CategoryTotalsResponse{Totals: totals})
}

func (sc *StatsController) handleStatsError(c *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		status := http.StatusBadRequest
		if errors.Is(err, domainerror.ErrConsistencyViolation) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, dto.ErrorResponse{Error: ledgerErr.Message, Code: string(ledgerErr.Code)})
		return
	}

	slog.Error("stats request failed", "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}
