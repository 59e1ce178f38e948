// Package controller contains the gin HTTP handlers.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/settings"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// SettingsController handles user settings endpoints.
type SettingsController struct {
	getUseCase    *settings.GetSettingsUseCase
	updateUseCase *settings.UpdateSettingsUseCase
}

// NewSettingsController creates a new SettingsController instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /api/v1/settings.
func (sc *SettingsController) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	output, err := sc.getUseCase.Execute(c.Request.Context(), settings.GetSettingsInput{
		UserID: userID,
	})
	if err != nil {
		sc.handleSettingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSettingsResponse(output.Settings))
}

// Update handles PATCH /api/v1/settings.
func (sc *SettingsController) Update(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	output, err := sc.updateUseCase.Execute(c.Request.Context(), settings.UpdateSettingsInput{
		UserID:   userID,
		Currency: req.Currency,
	})
	if err != nil {
		sc.handleSettingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSettingsResponse(output.Settings))
}

func (sc *SettingsController) handleSettingsError(c *gin.Context, err error) {
	var settingsErr *domainerror.SettingsError
	if errors.As(err, &settingsErr) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: settingsErr.Message,
			Code:  string(settingsErr.Code),
		})
		return
	}

	slog.Error("settings request failed", "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

func toSettingsResponse(s *entity.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Currency:  s.Currency,
		UpdatedAt: s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
