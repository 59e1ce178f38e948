// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	statsController       *controller.StatsController
	settingsController    *controller.SettingsController
	loginRateLimiter      *middleware.RateLimiter
	tokenService          adapter.TokenService
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	statsController *controller.StatsController,
	settingsController *controller.SettingsController,
	loginRateLimiter *middleware.RateLimiter,
	tokenService adapter.TokenService,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		categoryController:    categoryController,
		transactionController: transactionController,
		statsController:       statsController,
		settingsController:    settingsController,
		loginRateLimiter:      loginRateLimiter,
		tokenService:          tokenService,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.engine.GET("/health", r.healthController.Check)
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Handler("login"), r.authController.Login)
		auth.POST("/refresh", r.authController.Refresh)
		auth.POST("/logout", r.authController.Logout)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(r.tokenService))
	{
		categories := protected.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.POST("/suggest", r.categoryController.Suggest)
			categories.DELETE("/:name", r.categoryController.Delete)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.GET("/export", r.transactionController.Export)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("/balance", r.statsController.Balance)
			stats.GET("/history", r.statsController.History)
			stats.GET("/periods", r.statsController.Periods)
			stats.GET("/categories", r.statsController.CategoryTotals)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("", r.settingsController.Get)
			settings.PATCH("", r.settingsController.Update)
		}
	}
}
