package http

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"journal_server/internal/domain"
	"journal_server/internal/usecase"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (string, error)
}

type JournalService interface {
	CreateStrategy(ctx context.Context, userID string, in usecase.CreateStrategyInput) (domain.Strategy, error)
	ListStrategies(ctx context.Context, userID string) ([]domain.Strategy, error)
	UpdateStrategy(ctx context.Context, userID string, in usecase.UpdateStrategyInput) (domain.Strategy, error)
	DeleteStrategy(ctx context.Context, userID, strategyID string) error
	CreateOperation(ctx context.Context, userID string, in usecase.CreateOperationInput) (domain.Operation, error)
	UpdateOperation(ctx context.Context, userID string, in usecase.UpdateOperationInput) (domain.Operation, error)
	DeleteOperation(ctx context.Context, userID, operationID string) error
	ListOperations(ctx context.Context, userID, strategyID string, filter domain.OperationFilter) ([]domain.Operation, error)
	GetStrategyStats(ctx context.Context, userID, strategyID string) (domain.StrategyStats, error)
	AddRiskManagement(ctx context.Context, userID string, in usecase.RiskManagementInput) (domain.RiskManagement, error)
	AddLiquidation(ctx context.Context, userID string, in usecase.LiquidationInput) (domain.Liquidation, error)
}

type AccountService interface {
	Create(ctx context.Context, userID string, in usecase.TradingAccountInput) (domain.TradingAccount, error)
	Update(ctx context.Context, userID, accountID string, in usecase.TradingAccountInput) (domain.TradingAccount, error)
	Delete(ctx context.Context, userID, accountID string) error
	GetByID(ctx context.Context, userID, accountID string) (domain.TradingAccount, error)
	List(ctx context.Context, userID string) ([]domain.TradingAccount, error)
	ListActive(ctx context.Context, userID string) ([]domain.TradingAccount, error)
	ToggleStatus(ctx context.Context, userID, accountID string, isActive bool) (domain.TradingAccount, error)
}

type PresetService interface {
	Create(ctx context.Context, userID string, in usecase.RiskPresetInput) (domain.RiskPreset, error)
	Update(ctx context.Context, userID, presetID string, in usecase.RiskPresetInput) (domain.RiskPreset, error)
	Delete(ctx context.Context, userID, presetID string) error
	GetByID(ctx context.Context, userID, presetID string) (domain.RiskPreset, error)
	GetDefault(ctx context.Context, userID string) (domain.RiskPreset, error)
	List(ctx context.Context, userID string) ([]domain.RiskPreset, error)
	SetDefault(ctx context.Context, userID, presetID string) (domain.RiskPreset, error)
	CalculateRisk(ctx context.Context, userID, presetID string, accountBalance float64) (domain.RiskCalculation, error)
}

const localUserID = "user_id"

type Router struct {
	app            *fiber.App
	authService    AuthService
	journalService JournalService
	accountService AccountService
	presetService  PresetService
}

func New(auth AuthService, journal JournalService, accounts AccountService, presets PresetService) *Router {
	app := fiber.New()

	r := &Router{
		app:            app,
		authService:    auth,
		journalService: journal,
		accountService: accounts,
		presetService:  presets,
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Post("/auth/login", r.login)

	// Everything below requires a resolved session.
	v1.Use(r.requireUser)

	v1.Post("/auth/logout", r.logout)

	v1.Get("/strategies", r.listStrategies)
	v1.Post("/strategies", r.createStrategy)
	v1.Put("/strategies/:id", r.updateStrategy)
	v1.Delete("/strategies/:id", r.deleteStrategy)
	v1.Get("/strategies/:id/operations", r.listOperations)
	v1.Get("/strategies/:id/stats", r.getStrategyStats)

	v1.Post("/operations", r.createOperation)
	v1.Put("/operations/:id", r.updateOperation)
	v1.Delete("/operations/:id", r.deleteOperation)
	v1.Post("/operations/:id/risk-management", r.addRiskManagement)
	v1.Post("/operations/:id/liquidation", r.addLiquidation)

	v1.Get("/accounts", r.listAccounts)
	v1.Get("/accounts/active", r.listActiveAccounts)
	v1.Get("/accounts/:id", r.getAccount)
	v1.Post("/accounts", r.createAccount)
	v1.Put("/accounts/:id", r.updateAccount)
	v1.Delete("/accounts/:id", r.deleteAccount)
	v1.Patch("/accounts/:id/status", r.toggleAccountStatus)

	v1.Get("/risk-presets", r.listPresets)
	v1.Get("/risk-presets/default", r.getDefaultPreset)
	v1.Get("/risk-presets/:id", r.getPreset)
	v1.Post("/risk-presets", r.createPreset)
	v1.Put("/risk-presets/:id", r.updatePreset)
	v1.Delete("/risk-presets/:id", r.deletePreset)
	v1.Post("/risk-presets/:id/default", r.setDefaultPreset)
	v1.Get("/risk-presets/:id/risk", r.calculateRisk)

	return r
}

func (r *Router) App() *fiber.App {
	return r.app
}

// domainError maps the error taxonomy to HTTP statuses in one place. Foreign
// and absent entities both come back as 404.
func domainError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Message,
			"field": ve.Field,
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, strings.TrimPrefix(err.Error(), domain.ErrConflict.Error()+": "))
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func (r *Router) requireUser(c *fiber.Ctx) error {
	if r.authService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "auth service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	userID, err := r.authService.Resolve(ctx, bearerToken(c))
	if err != nil {
		return domainError(c, err)
	}

	c.Locals(localUserID, userID)
	return c.Next()
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals(localUserID).(string)
	return userID
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login godoc
// @Summary Authenticate and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} domain.Session
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (r *Router) login(c *fiber.Ctx) error {
	if r.authService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "auth service unavailable")
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 15*time.Second)
	defer cancel()

	session, err := r.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(session)
}

// logout godoc
// @Summary Close the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (r *Router) logout(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	if err := r.authService.Logout(ctx, bearerToken(c)); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

type StrategyRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	OperationTypes []string `json:"operationTypes"`
	EntrySignals   []string `json:"entrySignals"`
}

// listStrategies godoc
// @Summary List the caller's strategies with their operations
// @Tags strategies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Strategy
// @Failure 401 {object} map[string]string
// @Router /strategies [get]
func (r *Router) listStrategies(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	strategies, err := r.journalService.ListStrategies(ctx, currentUser(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(strategies)
}

// createStrategy godoc
// @Summary Create a strategy
// @Tags strategies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StrategyRequest true "Strategy payload"
// @Success 201 {object} domain.Strategy
// @Failure 400 {object} map[string]string
// @Router /strategies [post]
func (r *Router) createStrategy(c *fiber.Ctx) error {
	var req StrategyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	strategy, err := r.journalService.CreateStrategy(ctx, currentUser(c), usecase.CreateStrategyInput{
		Name:           req.Name,
		Description:    req.Description,
		OperationTypes: req.OperationTypes,
		EntrySignals:   req.EntrySignals,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(strategy)
}

// updateStrategy godoc
// @Summary Update a strategy
// @Tags strategies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Strategy ID"
// @Param request body StrategyRequest true "Strategy payload"
// @Success 200 {object} domain.Strategy
// @Failure 404 {object} map[string]string
// @Router /strategies/{id} [put]
func (r *Router) updateStrategy(c *fiber.Ctx) error {
	var req StrategyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	strategy, err := r.journalService.UpdateStrategy(ctx, currentUser(c), usecase.UpdateStrategyInput{
		ID:             c.Params("id"),
		Name:           req.Name,
		Description:    req.Description,
		OperationTypes: req.OperationTypes,
		EntrySignals:   req.EntrySignals,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(strategy)
}

// deleteStrategy godoc
// @Summary Delete a strategy and all of its operations
// @Tags strategies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Strategy ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /strategies/{id} [delete]
func (r *Router) deleteStrategy(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.journalService.DeleteStrategy(ctx, currentUser(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// listOperations godoc
// @Summary List a strategy's operations
// @Tags operations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Strategy ID"
// @Param missing query string false "Return only operations lacking this child record" Enums(risk_management, liquidation)
// @Success 200 {array} domain.Operation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /strategies/{id}/operations [get]
func (r *Router) listOperations(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	filter := domain.OperationFilter(c.Query("missing"))

	operations, err := r.journalService.ListOperations(ctx, currentUser(c), c.Params("id"), filter)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(operations)
}

// getStrategyStats godoc
// @Summary Aggregate figures for a strategy's operations
// @Tags strategies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Strategy ID"
// @Success 200 {object} domain.StrategyStats
// @Failure 404 {object} map[string]string
// @Router /strategies/{id}/stats [get]
func (r *Router) getStrategyStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	stats, err := r.journalService.GetStrategyStats(ctx, currentUser(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(stats)
}

type OperationRequest struct {
	StrategyID       string  `json:"strategyId"`
	OperationNumber  int     `json:"operationNumber"`
	Currency         string  `json:"currency"`
	Date             string  `json:"date"`
	Hour             int     `json:"hour"`
	Minute           int     `json:"minute"`
	BuySell          string  `json:"buySell"`
	OperationType    string  `json:"operationType"`
	EntryPrice       float64 `json:"entryPrice"`
	EntrySignal      string  `json:"entrySignal"`
	DailyATRPips     float64 `json:"dailyAtrPercentPips"`
	TradingAccountID string  `json:"tradingAccountId"`
}

// createOperation godoc
// @Summary Record an operation under a strategy
// @Tags operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OperationRequest true "Operation payload"
// @Success 201 {object} domain.Operation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /operations [post]
func (r *Router) createOperation(c *fiber.Ctx) error {
	var req OperationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	date := parseTime(req.Date, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02")
	if date.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	operation, err := r.journalService.CreateOperation(ctx, currentUser(c), usecase.CreateOperationInput{
		StrategyID:       req.StrategyID,
		OperationNumber:  req.OperationNumber,
		Currency:         req.Currency,
		Date:             date,
		Hour:             req.Hour,
		Minute:           req.Minute,
		BuySell:          domain.BuySell(req.BuySell),
		OperationType:    req.OperationType,
		EntryPrice:       req.EntryPrice,
		EntrySignal:      req.EntrySignal,
		DailyATRPips:     req.DailyATRPips,
		TradingAccountID: req.TradingAccountID,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(operation)
}

// updateOperation godoc
// @Summary Update an open operation's entry fields
// @Tags operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operation ID"
// @Param request body OperationRequest true "Operation payload"
// @Success 200 {object} domain.Operation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /operations/{id} [put]
func (r *Router) updateOperation(c *fiber.Ctx) error {
	var req OperationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	date := parseTime(req.Date, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02")
	if date.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	operation, err := r.journalService.UpdateOperation(ctx, currentUser(c), usecase.UpdateOperationInput{
		ID:            c.Params("id"),
		Currency:      req.Currency,
		Date:          date,
		Hour:          req.Hour,
		Minute:        req.Minute,
		BuySell:       domain.BuySell(req.BuySell),
		OperationType: req.OperationType,
		EntryPrice:    req.EntryPrice,
		EntrySignal:   req.EntrySignal,
		DailyATRPips:  req.DailyATRPips,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(operation)
}

// deleteOperation godoc
// @Summary Delete an operation and its attached records
// @Tags operations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /operations/{id} [delete]
func (r *Router) deleteOperation(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.journalService.DeleteOperation(ctx, currentUser(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

type RiskManagementRequest struct {
	EntryQuotation           float64 `json:"entryQuotation"`
	ProfitPotentialRef       string  `json:"profitPotentialRef"`
	ProfitPotentialQuotation float64 `json:"profitPotentialQuotation"`
	ProfitPotentialSize      float64 `json:"profitPotentialSize"`
	StopReference            string  `json:"stopReference"`
	StopQuotation            float64 `json:"stopQuotation"`
	StopSize                 float64 `json:"stopSize"`
	AccountBalance           float64 `json:"accountBalance"`
	LotQuantity              float64 `json:"lotQuantity"`
}

// addRiskManagement godoc
// @Summary Attach the risk-management record to an operation
// @Tags operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operation ID"
// @Param request body RiskManagementRequest true "Risk management payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /operations/{id}/risk-management [post]
func (r *Router) addRiskManagement(c *fiber.Ctx) error {
	var req RiskManagementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	rm, err := r.journalService.AddRiskManagement(ctx, currentUser(c), usecase.RiskManagementInput{
		OperationID:              c.Params("id"),
		EntryQuotation:           req.EntryQuotation,
		ProfitPotentialRef:       req.ProfitPotentialRef,
		ProfitPotentialQuotation: req.ProfitPotentialQuotation,
		ProfitPotentialSize:      req.ProfitPotentialSize,
		StopReference:            req.StopReference,
		StopQuotation:            req.StopQuotation,
		StopSize:                 req.StopSize,
		AccountBalance:           req.AccountBalance,
		LotQuantity:              req.LotQuantity,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"riskManagement":  rm,
		"riskRewardRatio": rm.RiskReward(),
	})
}

type LiquidationRequest struct {
	LiquidationDate       string  `json:"liquidationDate"`
	LiquidationHour       int     `json:"liquidationHour"`
	LiquidationMinute     int     `json:"liquidationMinute"`
	LiquidationQuotation  float64 `json:"liquidationQuotation"`
	BalanceInPips         float64 `json:"balanceInPips"`
	LiquidationProportion float64 `json:"liquidationProportion"`
	ProfitOrLoss          string  `json:"profitOrLoss"`
	OperationRisk         float64 `json:"operationRisk"`
	LiquidationReason     string  `json:"liquidationReason"`
	LiquidationType       string  `json:"liquidationType"`
}

// addLiquidation godoc
// @Summary Close an operation with a liquidation record
// @Tags operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operation ID"
// @Param request body LiquidationRequest true "Liquidation payload"
// @Success 201 {object} domain.Liquidation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /operations/{id}/liquidation [post]
func (r *Router) addLiquidation(c *fiber.Ctx) error {
	var req LiquidationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	date := parseTime(req.LiquidationDate, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02")
	if date.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid liquidationDate")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	liq, err := r.journalService.AddLiquidation(ctx, currentUser(c), usecase.LiquidationInput{
		OperationID:           c.Params("id"),
		LiquidationDate:       date,
		LiquidationHour:       req.LiquidationHour,
		LiquidationMinute:     req.LiquidationMinute,
		LiquidationQuotation:  req.LiquidationQuotation,
		BalanceInPips:         req.BalanceInPips,
		LiquidationProportion: req.LiquidationProportion,
		ProfitOrLoss:          domain.TradeResult(req.ProfitOrLoss),
		OperationRisk:         req.OperationRisk,
		LiquidationReason:     req.LiquidationReason,
		LiquidationType:       req.LiquidationType,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(liq)
}

type TradingAccountRequest struct {
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

type AccountStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// listAccounts godoc
// @Summary List the caller's trading accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.TradingAccount
// @Failure 401 {object} map[string]string
// @Router /accounts [get]
func (r *Router) listAccounts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	accounts, err := r.accountService.List(ctx, currentUser(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(accounts)
}

// listActiveAccounts godoc
// @Summary List only active trading accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.TradingAccount
// @Failure 401 {object} map[string]string
// @Router /accounts/active [get]
func (r *Router) listActiveAccounts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	accounts, err := r.accountService.ListActive(ctx, currentUser(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(accounts)
}

// getAccount godoc
// @Summary Fetch one trading account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} domain.TradingAccount
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [get]
func (r *Router) getAccount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	account, err := r.accountService.GetByID(ctx, currentUser(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(account)
}

// createAccount godoc
// @Summary Create a trading account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TradingAccountRequest true "Account payload"
// @Success 201 {object} domain.TradingAccount
// @Failure 400 {object} map[string]string
// @Router /accounts [post]
func (r *Router) createAccount(c *fiber.Ctx) error {
	var req TradingAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	account, err := r.accountService.Create(ctx, currentUser(c), usecase.TradingAccountInput{
		Name:     req.Name,
		Balance:  req.Balance,
		Currency: req.Currency,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// updateAccount godoc
// @Summary Update a trading account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body TradingAccountRequest true "Account payload"
// @Success 200 {object} domain.TradingAccount
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [put]
func (r *Router) updateAccount(c *fiber.Ctx) error {
	var req TradingAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	account, err := r.accountService.Update(ctx, currentUser(c), c.Params("id"), usecase.TradingAccountInput{
		Name:     req.Name,
		Balance:  req.Balance,
		Currency: req.Currency,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(account)
}

// deleteAccount godoc
// @Summary Delete a trading account without operations
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /accounts/{id} [delete]
func (r *Router) deleteAccount(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.accountService.Delete(ctx, currentUser(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// toggleAccountStatus godoc
// @Summary Activate or deactivate a trading account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body AccountStatusRequest true "Status payload"
// @Success 200 {object} domain.TradingAccount
// @Failure 404 {object} map[string]string
// @Router /accounts/{id}/status [patch]
func (r *Router) toggleAccountStatus(c *fiber.Ctx) error {
	var req AccountStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	account, err := r.accountService.ToggleStatus(ctx, currentUser(c), c.Params("id"), req.IsActive)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(account)
}

type RiskPresetRequest struct {
	Name           string  `json:"name"`
	RiskPercentage float64 `json:"riskPercentage"`
	MaxDrawdown    float64 `json:"maxDrawdown"`
	MaxOperations  int     `json:"maxOperations"`
	Description    string  `json:"description"`
}

// listPresets godoc
// @Summary List the caller's risk presets, default first
// @Tags risk-presets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.RiskPreset
// @Failure 401 {object} map[string]string
// @Router /risk-presets [get]
func (r *Router) listPresets(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	presets, err := r.presetService.List(ctx, currentUser(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(presets)
}

// getDefaultPreset godoc
// @Summary Fetch the caller's default risk preset
// @Tags risk-presets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.RiskPreset
// @Failure 404 {object} map[string]string
// @Router /risk-presets/default [get]
func (r *Router) getDefaultPreset(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	preset, err := r.presetService.GetDefault(ctx, currentUser(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(preset)
}

// getPreset godoc
// @Summary Fetch one risk preset
// @Tags risk-presets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID"
// @Success 200 {object} domain.RiskPreset
// @Failure 404 {object} map[string]string
// @Router /risk-presets/{id} [get]
func (r *Router) getPreset(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	preset, err := r.presetService.GetByID(ctx, currentUser(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(preset)
}

// createPreset godoc
// @Summary Create a risk preset
// @Tags risk-presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RiskPresetRequest true "Preset payload"
// @Success 201 {object} domain.RiskPreset
// @Failure 400 {object} map[string]string
// @Router /risk-presets [post]
func (r *Router) createPreset(c *fiber.Ctx) error {
	var req RiskPresetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	preset, err := r.presetService.Create(ctx, currentUser(c), usecase.RiskPresetInput{
		Name:           req.Name,
		RiskPercentage: req.RiskPercentage,
		MaxDrawdown:    req.MaxDrawdown,
		MaxOperations:  req.MaxOperations,
		Description:    req.Description,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(preset)
}

// updatePreset godoc
// @Summary Update a risk preset
// @Tags risk-presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID"
// @Param request body RiskPresetRequest true "Preset payload"
// @Success 200 {object} domain.RiskPreset
// @Failure 404 {object} map[string]string
// @Router /risk-presets/{id} [put]
func (r *Router) updatePreset(c *fiber.Ctx) error {
	var req RiskPresetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	preset, err := r.presetService.Update(ctx, currentUser(c), c.Params("id"), usecase.RiskPresetInput{
		Name:           req.Name,
		RiskPercentage: req.RiskPercentage,
		MaxDrawdown:    req.MaxDrawdown,
		MaxOperations:  req.MaxOperations,
		Description:    req.Description,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(preset)
}

// deletePreset godoc
// @Summary Delete a risk preset
// @Tags risk-presets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /risk-presets/{id} [delete]
func (r *Router) deletePreset(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.presetService.Delete(ctx, currentUser(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// setDefaultPreset godoc
// @Summary Make a preset the caller's single default
// @Tags risk-presets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID"
// @Success 200 {object} domain.RiskPreset
// @Failure 404 {object} map[string]string
// @Router /risk-presets/{id}/default [post]
func (r *Router) setDefaultPreset(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	preset, err := r.presetService.SetDefault(ctx, currentUser(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(preset)
}

// calculateRisk godoc
// @Summary Apply a preset's risk percentage to a balance
// @Tags risk-presets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID"
// @Param balance query number true "Account balance"
// @Success 200 {object} domain.RiskCalculation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /risk-presets/{id}/risk [get]
func (r *Router) calculateRisk(c *fiber.Ctx) error {
	balance, err := strconv.ParseFloat(c.Query("balance"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid balance")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	calc, err := r.presetService.CalculateRisk(ctx, currentUser(c), c.Params("id"), balance)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(calc)
}

func parseTime(raw string, layouts ...string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
