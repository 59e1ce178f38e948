// Package main is the entry point for the Budget Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/settings"
	"github.com/budget-tracker/backend/internal/application/usecase/stats"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Budget Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.MonthHistoryModel{},
		&model.YearHistoryModel{},
		&model.UserSettingsModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Redis is optional; the rate limiter falls back to an in-process window.
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		if opts, err := goredis.ParseURL(cfg.Redis.URL); err == nil {
			client := goredis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := client.Ping(pingCtx).Err(); err == nil {
				redisClient = client
			} else {
				slog.Warn("Redis unreachable, using in-memory rate limiting", "error", err)
			}
			cancel()
		} else {
			slog.Warn("Invalid Redis URL, using in-memory rate limiting", "error", err)
		}
	}

	// Repositories
	ledgerRepo := persistence.NewLedgerRepository(database.DB())
	historyRepo := persistence.NewHistoryRepository(database.DB())
	categoryRepo := persistence.NewCategoryRepository(database.DB())
	userRepo := persistence.NewUserRepository(database.DB())
	tokenRepo := persistence.NewTokenRepository(database.DB())
	settingsRepo := persistence.NewSettingsRepository(database.DB())

	// Services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		tokenRepo,
	)

	var emailSender adapter.EmailSender
	if client := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromEmail); client != nil {
		emailSender = client
	}

	geminiService, err := adapters.NewGeminiService(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	if err != nil {
		slog.Warn("Category suggestion service unavailable", "error", err)
	} else {
		defer geminiService.Close()
	}

	// Use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, emailSender)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	var suggester adapter.CategorySuggester
	if geminiService != nil {
		suggester = geminiService
	}
	suggestCategoryUseCase := category.NewSuggestCategoryUseCase(categoryRepo, suggester)

	recordUseCase := transaction.NewRecordTransactionUseCase(ledgerRepo, categoryRepo)
	reverseUseCase := transaction.NewReverseTransactionUseCase(ledgerRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(ledgerRepo)
	exportUseCase := transaction.NewExportTransactionsUseCase(listTransactionsUseCase)

	balanceUseCase := stats.NewGetBalanceUseCase(ledgerRepo)
	historyUseCase := stats.NewGetHistoryUseCase(historyRepo)
	periodsUseCase := stats.NewGetHistoryPeriodsUseCase(historyRepo)
	categoryTotalsUseCase := stats.NewGetCategoryTotalsUseCase(ledgerRepo)

	getSettingsUseCase := settings.NewGetSettingsUseCase(settingsRepo)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(settingsRepo)

	// Controllers
	healthController := controller.NewHealthController(database.DB())
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshUseCase, logoutUseCase)
	categoryController := controller.NewCategoryController(createCategoryUseCase, listCategoriesUseCase, deleteCategoryUseCase, suggestCategoryUseCase)
	transactionController := controller.NewTransactionController(recordUseCase, reverseUseCase, listTransactionsUseCase, exportUseCase)
	statsController := controller.NewStatsController(balanceUseCase, historyUseCase, periodsUseCase, categoryTotalsUseCase)
	settingsController := controller.NewSettingsController(getSettingsUseCase, updateSettingsUseCase)

	loginRateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)

	engine := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		statsController,
		settingsController,
		loginRateLimiter,
		tokenService,
	).Setup(cfg.Server.Environment)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
