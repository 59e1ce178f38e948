// Package controller contains the gin HTTP handlers.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles ledger transaction endpoints.
type TransactionController struct {
	recordUseCase  *transaction.RecordTransactionUseCase
	reverseUseCase *transaction.ReverseTransactionUseCase
	listUseCase    *transaction.ListTransactionsUseCase
	exportUseCase  *transaction.ExportTransactionsUseCase
}

// NewTransactionController creates a new TransactionController instance.
func NewTransactionController(
	recordUseCase *transaction.RecordTransactionUseCase,
	reverseUseCase *transaction.ReverseTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	exportUseCase *transaction.ExportTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		recordUseCase:  recordUseCase,
		reverseUseCase: reverseUseCase,
		listUseCase:    listUseCase,
		exportUseCase:  exportUseCase,
	}
}

// Create handles POST /api/v1/transactions.
func (tc *TransactionController) Create(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid amount",
			Code:  string(domainerror.ErrCodeInvalidTransactionAmount),
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return
	}

	output, err := tc.recordUseCase.Execute(c.Request.Context(), transaction.RecordTransactionInput{
		UserID:      userID,
		Amount:      amount,
		Type:        entity.TransactionType(req.Type),
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		tc.handleLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(output.Transaction))
}

// Delete handles DELETE /api/v1/transactions/:id.
func (tc *TransactionController) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "transaction not found",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return
	}

	if _, err := tc.reverseUseCase.Execute(c.Request.Context(), transaction.ReverseTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	}); err != nil {
		tc.handleLedgerError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /api/v1/transactions.
func (tc *TransactionController) List(c *gin.Context) {
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

	output, err := tc.listUseCase.Execute(c.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		tc.handleLedgerError(c, err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(output.Transactions))
	for _, txn := range output.Transactions {
		responses = append(responses, *toTransactionResponse(txn))
	}
	c.JSON(http.StatusOK, dto.TransactionListResponse{Transactions: responses})
}

// Export handles GET /api/v1/transactions/export.
func (tc *TransactionController) Export(c *gin.Context) {
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

	output, err := tc.exportUseCase.Execute(c.Request.Context(), transaction.ExportTransactionsInput{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		tc.handleLedgerError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	c.Data(http.StatusOK, "text/csv", output.Content)
}

func (tc *TransactionController) handleLedgerError(c *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domainerror.ErrTransactionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domainerror.ErrConsistencyViolation):
			status = http.StatusInternalServerError
		}
		c.JSON(status, dto.ErrorResponse{Error: ledgerErr.Message, Code: string(ledgerErr.Code)})
		return
	}

	slog.Error("transaction request failed", "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

func toTransactionResponse(txn *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:           txn.ID.String(),
		Amount:       txn.Amount.StringFixed(2),
		Type:         string(txn.Type),
		Category:     txn.Category,
		CategoryIcon: txn.CategoryIcon,
		Description:  txn.Description,
		Date:         txn.Date.UTC().Format("2006-01-02"),
		CreatedAt:    txn.CreatedAt.UTC().Format(time.RFC3339),
	}
}
