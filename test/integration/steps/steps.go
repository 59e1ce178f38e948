// Package steps provides step definitions for the BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/settings"
	"github.com/budget-tracker/backend/internal/application/usecase/stats"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
	"github.com/budget-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var (
	serverOnce sync.Once
	testDB     *mock.Db
	baseURL    string
)

type testContext struct {
	client            *http.Client
	headers           map[string]string
	accessToken       string
	lastStatus        int
	lastBody          []byte
	lastTransactionID string
}

func startServer() {
	serverOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb(map[string]any{
			"users":           &model.UserModel{},
			"refresh_tokens":  &model.RefreshTokenModel{},
			"categories":      &model.CategoryModel{},
			"transactions":    &model.TransactionModel{},
			"month_histories": &model.MonthHistoryModel{},
			"year_histories":  &model.YearHistoryModel{},
			"user_settings":   &model.UserSettingsModel{},
		})

		dbConn := testDB.DbConn
		ledgerRepo := persistence.NewLedgerRepository(dbConn)
		historyRepo := persistence.NewHistoryRepository(dbConn)
		categoryRepo := persistence.NewCategoryRepository(dbConn)
		userRepo := persistence.NewUserRepository(dbConn)
		tokenRepo := persistence.NewTokenRepository(dbConn)
		settingsRepo := persistence.NewSettingsRepository(dbConn)

		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute, 24*time.Hour, tokenRepo)

		listTransactionsUseCase := transaction.NewListTransactionsUseCase(ledgerRepo)

		engine := router.NewRouter(
			controller.NewHealthController(dbConn),
			controller.NewAuthController(
				auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, nil),
				auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
				auth.NewRefreshTokenUseCase(tokenService),
				auth.NewLogoutUserUseCase(tokenService),
			),
			controller.NewCategoryController(
				category.NewCreateCategoryUseCase(categoryRepo),
				category.NewListCategoriesUseCase(categoryRepo),
				category.NewDeleteCategoryUseCase(categoryRepo),
				category.NewSuggestCategoryUseCase(categoryRepo, nil),
			),
			controller.NewTransactionController(
				transaction.NewRecordTransactionUseCase(ledgerRepo, categoryRepo),
				transaction.NewReverseTransactionUseCase(ledgerRepo),
				listTransactionsUseCase,
				transaction.NewExportTransactionsUseCase(listTransactionsUseCase),
			),
			controller.NewStatsController(
				stats.NewGetBalanceUseCase(ledgerRepo),
				stats.NewGetHistoryUseCase(historyRepo),
				stats.NewGetHistoryPeriodsUseCase(historyRepo),
				stats.NewGetCategoryTotalsUseCase(ledgerRepo),
			),
			controller.NewSettingsController(
				settings.NewGetSettingsUseCase(settingsRepo),
				settings.NewUpdateSettingsUseCase(settingsRepo),
			),
			middleware.NewRateLimiter(mock.NewRedis(), 1000, time.Minute),
			tokenService,
		).Setup("test")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			panic(err)
		}
		baseURL = "http://" + listener.Addr().String()

		go func() {
			_ = http.Serve(listener, engine)
		}()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: make(map[string]string),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.headers = make(map[string]string)
		test.accessToken = ""
		test.lastTransactionID = ""
		if testDB != nil {
			if err := testDB.ClearDB(); err != nil {
				return ctx, err
			}
		}
		return ctx, nil
	})

	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^a registered user "([^"]*)" with password "([^"]*)"$`, test.aRegisteredUserWithPassword)
	ctx.Given(`^a category "([^"]*)" of type "([^"]*)"$`, test.aCategoryOfType)
	ctx.Given(`^a recorded transaction of "([^"]*)" "([^"]*)" in "([^"]*)" on "([^"]*)"$`, test.aRecordedTransaction)

	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.sendRequest)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.sendRequestWithBody)
	ctx.When(`^I send an unauthenticated "([^"]*)" request to "([^"]*)"$`, test.sendUnauthenticatedRequest)
	ctx.When(`^I send an unauthenticated "([^"]*)" request to "([^"]*)" with body:$`, test.sendUnauthenticatedRequestWithBody)
	ctx.When(`^I reverse the last recorded transaction$`, test.reverseLastTransaction)

	ctx.Then(`^the response status should be (\d+)$`, test.responseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.responseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.responseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) elements$`, test.responseFieldShouldHaveElements)
	ctx.Then(`^the db should contain (\d+) rows in the "([^"]*)" table$`, test.dbShouldContainRows)
	ctx.Then(`^the day bucket for "([^"]*)" should have income "([^"]*)" and expense "([^"]*)"$`, test.dayBucketShouldHave)
}

func (t *testContext) theAPIServerIsRunning() error {
	startServer()

	// Wait until the health endpoint answers.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := t.client.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server did not become healthy")
}

func (t *testContext) aRegisteredUserWithPassword(email, password string) error {
	body := fmt.Sprintf(`{"email": %q, "name": "Test User", "password": %q}`, email, password)
	if err := t.do(http.MethodPost, "/api/v1/auth/register", []byte(body), false); err != nil {
		return err
	}
	if t.lastStatus != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s", t.lastStatus, t.lastBody)
	}

	token, err := t.lookupField("accessToken")
	if err != nil {
		return err
	}
	t.accessToken = fmt.Sprint(token)
	return nil
}

func (t *testContext) aCategoryOfType(name, categoryType string) error {
	body := fmt.Sprintf(`{"name": %q, "icon": "cart", "type": %q}`, name, categoryType)
	if err := t.do(http.MethodPost, "/api/v1/categories", []byte(body), true); err != nil {
		return err
	}
	if t.lastStatus != http.StatusCreated {
		return fmt.Errorf("category creation failed with status %d: %s", t.lastStatus, t.lastBody)
	}
	return nil
}

func (t *testContext) aRecordedTransaction(amount, txType, categoryName, date string) error {
	body := fmt.Sprintf(`{"amount": %q, "type": %q, "category": %q, "date": %q}`, amount, txType, categoryName, date)
	if err := t.do(http.MethodPost, "/api/v1/transactions", []byte(body), true); err != nil {
		return err
	}
	if t.lastStatus != http.StatusCreated {
		return fmt.Errorf("transaction recording failed with status %d: %s", t.lastStatus, t.lastBody)
	}

	id, err := t.lookupField("id")
	if err != nil {
		return err
	}
	t.lastTransactionID = fmt.Sprint(id)
	return nil
}

func (t *testContext) sendRequest(method, path string) error {
	return t.do(method, path, nil, true)
}

func (t *testContext) sendRequestWithBody(method, path string, body *godog.DocString) error {
	return t.do(method, path, []byte(body.Content), true)
}

func (t *testContext) sendUnauthenticatedRequest(method, path string) error {
	return t.do(method, path, nil, false)
}

func (t *testContext) sendUnauthenticatedRequestWithBody(method, path string, body *godog.DocString) error {
	return t.do(method, path, []byte(body.Content), false)
}

func (t *testContext) reverseLastTransaction() error {
	if t.lastTransactionID == "" {
		return fmt.Errorf("no transaction has been recorded")
	}
	return t.do(http.MethodDelete, "/api/v1/transactions/"+t.lastTransactionID, nil, true)
}

func (t *testContext) do(method, path string, body []byte, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated && t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	t.lastStatus = resp.StatusCode
	t.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (t *testContext) responseStatusShouldBe(expected int) error {
	if t.lastStatus != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, t.lastStatus, t.lastBody)
	}
	return nil
}

func (t *testContext) responseFieldShouldBe(field, expected string) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}
	if fmt.Sprint(value) != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", field, expected, fmt.Sprint(value))
	}
	return nil
}

func (t *testContext) responseFieldShouldExist(field string) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}
	if value == nil || fmt.Sprint(value) == "" {
		return fmt.Errorf("expected field %q to be set", field)
	}
	return nil
}

func (t *testContext) responseFieldShouldHaveElements(field string, count int) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not a list", field)
	}
	if len(list) != count {
		return fmt.Errorf("expected %d elements in %q, got %d", count, field, len(list))
	}
	return nil
}

// lookupField navigates the last JSON response body by a dot-separated path.
func (t *testContext) lookupField(path string) (any, error) {
	var parsed any
	if err := json.Unmarshal(t.lastBody, &parsed); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w (body: %s)", err, t.lastBody)
	}

	current := parsed
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cannot navigate %q in response %s", path, t.lastBody)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response %s", path, t.lastBody)
		}
	}
	return current, nil
}

func (t *testContext) dbShouldContainRows(count int, table string) error {
	actual, err := testDB.Count(table)
	if err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d rows in %s, got %d", count, table, actual)
	}
	return nil
}

func (t *testContext) dayBucketShouldHave(date, income, expense string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	year, month, day := entity.BucketFor(parsed)

	var bucket model.MonthHistoryModel
	if err := testDB.DbConn.
		Where("year = ? AND month = ? AND day = ?", year, month, day).
		First(&bucket).Error; err != nil {
		return fmt.Errorf("day bucket for %s not found: %w", date, err)
	}

	wantIncome := decimal.RequireFromString(income)
	wantExpense := decimal.RequireFromString(expense)
	if !bucket.Income.Equal(wantIncome) || !bucket.Expense.Equal(wantExpense) {
		return fmt.Errorf("bucket for %s has income=%s expense=%s, want income=%s expense=%s",
			date, bucket.Income, bucket.Expense, wantIncome, wantExpense)
	}
	return nil
}
