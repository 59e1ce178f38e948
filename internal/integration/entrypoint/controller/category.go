// Package controller contains the gin HTTP handlers.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	createUseCase  *category.CreateCategoryUseCase
	listUseCase    *category.ListCategoriesUseCase
	deleteUseCase  *category.DeleteCategoryUseCase
	suggestUseCase *category.SuggestCategoryUseCase
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(
	createUseCase *category.CreateCategoryUseCase,
	listUseCase *category.ListCategoriesUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
	suggestUseCase *category.SuggestCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		createUseCase:  createUseCase,
		listUseCase:    listUseCase,
		deleteUseCase:  deleteUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// Create handles POST /api/v1/categories.
func (cc *CategoryController) Create(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	output, err := cc.createUseCase.Execute(c.Request.Context(), category.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
		Type:   entity.TransactionType(req.Type),
	})
	if err != nil {
		cc.handleCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCategoryResponse(output.Category))
}

// List handles GET /api/v1/categories.
func (cc *CategoryController) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var typeFilter *entity.TransactionType
	if raw := c.Query("type"); raw != "" {
		t := entity.TransactionType(raw)
		if t != entity.TransactionTypeExpense && t != entity.TransactionTypeIncome {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "type must be 'expense' or 'income'",
				Code:  string(domainerror.ErrCodeInvalidCategoryType),
			})
			return
		}
		typeFilter = &t
	}

	output, err := cc.listUseCase.Execute(c.Request.Context(), category.ListCategoriesInput{
		UserID: userID,
		Type:   typeFilter,
	})
	if err != nil {
		cc.handleCategoryError(c, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(output.Categories))
	for _, cat := range output.Categories {
		responses = append(responses, *toCategoryResponse(cat))
	}
	c.JSON(http.StatusOK, responses)
}

// Delete handles DELETE /api/v1/categories/:name.
func (cc *CategoryController) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	if _, err := cc.deleteUseCase.Execute(c.Request.Context(), category.DeleteCategoryInput{
		UserID: userID,
		Name:   c.Param("name"),
	}); err != nil {
		cc.handleCategoryError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Suggest handles POST /api/v1/categories/suggest.
func (cc *CategoryController) Suggest(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.SuggestCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	output, err := cc.suggestUseCase.Execute(c.Request.Context(), category.SuggestCategoryInput{
		UserID:      userID,
		Description: req.Description,
		Type:        entity.TransactionType(req.Type),
	})
	if err != nil {
		cc.handleCategoryError(c, err)
		return
	}

	resp := dto.SuggestCategoryResponse{}
	if output.Category != nil {
		resp.Category = toCategoryResponse(output.Category)
	}
	c.JSON(http.StatusOK, resp)
}

func (cc *CategoryController) handleCategoryError(c *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domainerror.ErrCategoryNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domainerror.ErrCategoryNameExists):
			status = http.StatusConflict
		case errors.Is(err, domainerror.ErrSuggestionUnavailable):
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, dto.ErrorResponse{Error: catErr.Message, Code: string(catErr.Code)})
		return
	}

	slog.Error("category request failed", "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

func toCategoryResponse(cat *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		Name:      cat.Name,
		Icon:      cat.Icon,
		Type:      string(cat.Type),
		CreatedAt: cat.CreatedAt.UTC().Format(time.RFC3339),
	}
}
