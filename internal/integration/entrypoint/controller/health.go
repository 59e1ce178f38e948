// Package controller contains the gin HTTP handlers.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController reports service liveness and database reachability.
type HealthController struct {
	db *gorm.DB
}

// NewHealthController creates a new HealthController instance.
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check handles GET /health.
func (hc *HealthController) Check(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := hc.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
	})
}
