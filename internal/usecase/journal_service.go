package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"journal_server/internal/domain"
	"journal_server/pkg/id"
)

// JournalService covers strategies, their operations, and the attached
// risk-management and liquidation records. Every call takes the resolved
// user id explicitly; nothing is read from ambient state.
type JournalService struct {
	strategyRepo  domain.StrategyRepository
	operationRepo domain.OperationRepository
	accountRepo   domain.TradingAccountRepository
}

func NewJournalService(strategyRepo domain.StrategyRepository, operationRepo domain.OperationRepository, accountRepo domain.TradingAccountRepository) (*JournalService, error) {
	if strategyRepo == nil {
		return nil, errors.New("strategy repository required")
	}
	if operationRepo == nil {
		return nil, errors.New("operation repository required")
	}
	if accountRepo == nil {
		return nil, errors.New("trading account repository required")
	}
	return &JournalService{
		strategyRepo:  strategyRepo,
		operationRepo: operationRepo,
		accountRepo:   accountRepo,
	}, nil
}

type CreateStrategyInput struct {
	Name           string
	Description    string
	OperationTypes []string
	EntrySignals   []string
}

func (s *JournalService) CreateStrategy(ctx context.Context, userID string, in CreateStrategyInput) (domain.Strategy, error) {
	if userID == "" {
		return domain.Strategy{}, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return domain.Strategy{}, domain.Invalid("name", "strategy name is required")
	}

	strategy := domain.Strategy{
		ID:             id.New(),
		UserID:         userID,
		Name:           in.Name,
		Description:    in.Description,
		OperationTypes: emptyIfNil(in.OperationTypes),
		EntrySignals:   emptyIfNil(in.EntrySignals),
	}

	if err := s.strategyRepo.Create(ctx, strategy); err != nil {
		return domain.Strategy{}, fmt.Errorf("create strategy: %w", err)
	}

	return s.strategyRepo.GetByID(ctx, userID, strategy.ID)
}

func (s *JournalService) ListStrategies(ctx context.Context, userID string) ([]domain.Strategy, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.strategyRepo.ListByUser(ctx, userID)
}

type UpdateStrategyInput struct {
	ID             string
	Name           string
	Description    string
	OperationTypes []string
	EntrySignals   []string
}

func (s *JournalService) UpdateStrategy(ctx context.Context, userID string, in UpdateStrategyInput) (domain.Strategy, error) {
	if userID == "" {
		return domain.Strategy{}, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return domain.Strategy{}, domain.Invalid("name", "strategy name is required")
	}

	if _, err := s.strategyRepo.GetByID(ctx, userID, in.ID); err != nil {
		return domain.Strategy{}, err
	}

	strategy := domain.Strategy{
		ID:             in.ID,
		UserID:         userID,
		Name:           in.Name,
		Description:    in.Description,
		OperationTypes: in.OperationTypes,
		EntrySignals:   in.EntrySignals,
	}
	if err := s.strategyRepo.Update(ctx, strategy); err != nil {
		return domain.Strategy{}, fmt.Errorf("update strategy: %w", err)
	}

	return s.strategyRepo.GetByID(ctx, userID, in.ID)
}

// DeleteStrategy removes the strategy and cascades to its operations and
// their children.
func (s *JournalService) DeleteStrategy(ctx context.Context, userID, strategyID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if _, err := s.strategyRepo.GetByID(ctx, userID, strategyID); err != nil {
		return err
	}
	return s.strategyRepo.Delete(ctx, strategyID)
}

type CreateOperationInput struct {
	StrategyID       string
	OperationNumber  int
	Currency         string
	Date             time.Time
	Hour             int
	Minute           int
	BuySell          domain.BuySell
	OperationType    string
	EntryPrice       float64
	EntrySignal      string
	DailyATRPips     float64
	TradingAccountID string
}

func (s *JournalService) CreateOperation(ctx context.Context, userID string, in CreateOperationInput) (domain.Operation, error) {
	if userID == "" {
		return domain.Operation{}, domain.ErrUnauthorized
	}
	if _, err := s.strategyRepo.GetByID(ctx, userID, in.StrategyID); err != nil {
		return domain.Operation{}, err
	}
	if err := validateOperationFields(in.Currency, in.Hour, in.Minute, in.BuySell, in.OperationType, in.EntryPrice); err != nil {
		return domain.Operation{}, err
	}

	if in.TradingAccountID != "" {
		if _, err := s.accountRepo.GetByID(ctx, userID, in.TradingAccountID); err != nil {
			return domain.Operation{}, err
		}
	}

	number := in.OperationNumber
	if number <= 0 {
		count, err := s.operationRepo.CountByStrategy(ctx, in.StrategyID)
		if err != nil {
			return domain.Operation{}, fmt.Errorf("count operations: %w", err)
		}
		number = int(count) + 1
	}

	operation := domain.Operation{
		ID:               id.New(),
		StrategyID:       in.StrategyID,
		TradingAccountID: in.TradingAccountID,
		OperationNumber:  number,
		Currency:         in.Currency,
		Date:             in.Date,
		Hour:             in.Hour,
		Minute:           in.Minute,
		DayOfWeek:        domain.DayOfWeek(in.Date),
		WeekNumber:       domain.ISOWeekNumber(in.Date),
		BuySell:          in.BuySell,
		OperationType:    in.OperationType,
		EntryPrice:       in.EntryPrice,
		EntrySignal:      in.EntrySignal,
		DailyATRPips:     in.DailyATRPips,
	}

	if err := s.operationRepo.Create(ctx, operation); err != nil {
		return domain.Operation{}, fmt.Errorf("create operation: %w", err)
	}

	return s.operationRepo.GetByID(ctx, operation.ID)
}

type UpdateOperationInput struct {
	ID            string
	Currency      string
	Date          time.Time
	Hour          int
	Minute        int
	BuySell       domain.BuySell
	OperationType string
	EntryPrice    float64
	EntrySignal   string
	DailyATRPips  float64
}

func (s *JournalService) UpdateOperation(ctx context.Context, userID string, in UpdateOperationInput) (domain.Operation, error) {
	if userID == "" {
		return domain.Operation{}, domain.ErrUnauthorized
	}

	existing, err := s.ownedOperation(ctx, userID, in.ID)
	if err != nil {
		return domain.Operation{}, err
	}
	if err := validateOperationFields(in.Currency, in.Hour, in.Minute, in.BuySell, in.OperationType, in.EntryPrice); err != nil {
		return domain.Operation{}, err
	}

	operation := existing
	operation.Currency = in.Currency
	operation.Date = in.Date
	operation.Hour = in.Hour
	operation.Minute = in.Minute
	operation.DayOfWeek = domain.DayOfWeek(in.Date)
	operation.WeekNumber = domain.ISOWeekNumber(in.Date)
	operation.BuySell = in.BuySell
	operation.OperationType = in.OperationType
	operation.EntryPrice = in.EntryPrice
	operation.EntrySignal = in.EntrySignal
	operation.DailyATRPips = in.DailyATRPips

	if err := s.operationRepo.Update(ctx, operation); err != nil {
		return domain.Operation{}, fmt.Errorf("update operation: %w", err)
	}

	return s.operationRepo.GetByID(ctx, in.ID)
}

func (s *JournalService) DeleteOperation(ctx context.Context, userID, operationID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if _, err := s.ownedOperation(ctx, userID, operationID); err != nil {
		return err
	}
	return s.operationRepo.Delete(ctx, operationID)
}

func (s *JournalService) ListOperations(ctx context.Context, userID, strategyID string, filter domain.OperationFilter) ([]domain.Operation, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	switch filter {
	case domain.OperationFilterAll, domain.OperationFilterNoRiskManagement, domain.OperationFilterNoLiquidation:
	default:
		return nil, domain.Invalid("missing", "unknown filter")
	}
	if _, err := s.strategyRepo.GetByID(ctx, userID, strategyID); err != nil {
		return nil, err
	}
	return s.operationRepo.ListByStrategy(ctx, strategyID, filter)
}

// GetStrategyStats reduces the strategy's operations into aggregate figures.
func (s *JournalService) GetStrategyStats(ctx context.Context, userID, strategyID string) (domain.StrategyStats, error) {
	if userID == "" {
		return domain.StrategyStats{}, domain.ErrUnauthorized
	}
	if _, err := s.strategyRepo.GetByID(ctx, userID, strategyID); err != nil {
		return domain.StrategyStats{}, err
	}

	operations, err := s.operationRepo.ListByStrategy(ctx, strategyID, domain.OperationFilterAll)
	if err != nil {
		return domain.StrategyStats{}, err
	}

	return domain.ComputeStrategyStats(operations), nil
}

type RiskManagementInput struct {
	OperationID              string
	EntryQuotation           float64
	ProfitPotentialRef       string
	ProfitPotentialQuotation float64
	ProfitPotentialSize      float64
	StopReference            string
	StopQuotation            float64
	StopSize                 float64
	AccountBalance           float64
	LotQuantity              float64
}

// AddRiskManagement attaches the single risk-management record to an open
// operation. Stop size and profit potential are derived from the quotations
// when the caller leaves them zero.
func (s *JournalService) AddRiskManagement(ctx context.Context, userID string, in RiskManagementInput) (domain.RiskManagement, error) {
	if userID == "" {
		return domain.RiskManagement{}, domain.ErrUnauthorized
	}

	operation, err := s.ownedOperation(ctx, userID, in.OperationID)
	if err != nil {
		return domain.RiskManagement{}, err
	}
	if operation.RiskManagement != nil {
		return domain.RiskManagement{}, fmt.Errorf("%w: operation already has risk management", domain.ErrConflict)
	}

	if in.EntryQuotation <= 0 {
		return domain.RiskManagement{}, domain.Invalid("entryQuotation", "entry quotation must be positive")
	}
	if in.StopQuotation <= 0 {
		return domain.RiskManagement{}, domain.Invalid("stopQuotation", "stop quotation must be positive")
	}

	stopSize := in.StopSize
	if stopSize == 0 {
		stopSize = float64(domain.StopSizePips(in.EntryQuotation, in.StopQuotation, operation.BuySell))
	}

	profitSize := in.ProfitPotentialSize
	if profitSize == 0 && in.ProfitPotentialQuotation > 0 {
		profitSize = float64(domain.PipsFromPriceDiff(in.EntryQuotation, in.ProfitPotentialQuotation, domain.DefaultPipFactor))
		if domain.SignedProfitPotential(in.EntryQuotation, in.ProfitPotentialQuotation, operation.BuySell) < 0 {
			profitSize = -profitSize
		}
	}

	rm := domain.RiskManagement{
		ID:                       id.New(),
		OperationID:              in.OperationID,
		EntryQuotation:           in.EntryQuotation,
		ProfitPotentialRef:       in.ProfitPotentialRef,
		ProfitPotentialQuotation: in.ProfitPotentialQuotation,
		ProfitPotentialSize:      profitSize,
		StopReference:            in.StopReference,
		StopQuotation:            in.StopQuotation,
		StopSize:                 stopSize,
		AccountBalance:           in.AccountBalance,
		LotQuantity:              in.LotQuantity,
	}

	if err := s.operationRepo.AddRiskManagement(ctx, rm); err != nil {
		return domain.RiskManagement{}, fmt.Errorf("add risk management: %w", err)
	}

	return rm, nil
}

type LiquidationInput struct {
	OperationID           string
	LiquidationDate       time.Time
	LiquidationHour       int
	LiquidationMinute     int
	LiquidationQuotation  float64
	BalanceInPips         float64
	LiquidationProportion float64
	ProfitOrLoss          domain.TradeResult
	OperationRisk         float64
	LiquidationReason     string
	LiquidationType       string
}

// AddLiquidation closes an operation. Balance in pips and the profit/loss
// marker are derived from entry and liquidation prices when omitted.
func (s *JournalService) AddLiquidation(ctx context.Context, userID string, in LiquidationInput) (domain.Liquidation, error) {
	if userID == "" {
		return domain.Liquidation{}, domain.ErrUnauthorized
	}

	operation, err := s.ownedOperation(ctx, userID, in.OperationID)
	if err != nil {
		return domain.Liquidation{}, err
	}
	if operation.Liquidation != nil {
		return domain.Liquidation{}, fmt.Errorf("%w: operation already liquidated", domain.ErrConflict)
	}

	if in.LiquidationHour < 0 || in.LiquidationHour > 23 {
		return domain.Liquidation{}, domain.Invalid("liquidationHour", "hour must be between 0 and 23")
	}
	if in.LiquidationMinute < 0 || in.LiquidationMinute > 59 {
		return domain.Liquidation{}, domain.Invalid("liquidationMinute", "minute must be between 0 and 59")
	}
	if in.LiquidationQuotation <= 0 {
		return domain.Liquidation{}, domain.Invalid("liquidationQuotation", "liquidation quotation must be positive")
	}

	result := in.ProfitOrLoss
	if result == "" {
		result = domain.ProfitOrLoss(operation.EntryPrice, in.LiquidationQuotation, operation.BuySell)
	}
	switch result {
	case domain.TradeResultProfit, domain.TradeResultLoss, domain.TradeResultBreakEven:
	default:
		return domain.Liquidation{}, domain.Invalid("profitOrLoss", "must be PROFIT, LOSS or BREAK_EVEN")
	}

	pips := in.BalanceInPips
	if pips == 0 && result != domain.TradeResultBreakEven {
		pips = float64(domain.PipsFromPriceDiff(operation.EntryPrice, in.LiquidationQuotation, domain.DefaultPipFactor))
		if result == domain.TradeResultLoss {
			pips = -pips
		}
	}

	liq := domain.Liquidation{
		ID:                    id.New(),
		OperationID:           in.OperationID,
		LiquidationDate:       in.LiquidationDate,
		LiquidationHour:       in.LiquidationHour,
		LiquidationMinute:     in.LiquidationMinute,
		LiquidationQuotation:  in.LiquidationQuotation,
		BalanceInPips:         pips,
		LiquidationProportion: in.LiquidationProportion,
		ProfitOrLoss:          result,
		OperationRisk:         in.OperationRisk,
		LiquidationReason:     in.LiquidationReason,
		LiquidationType:       in.LiquidationType,
	}

	if err := s.operationRepo.AddLiquidation(ctx, liq); err != nil {
		return domain.Liquidation{}, fmt.Errorf("add liquidation: %w", err)
	}

	return liq, nil
}

// ownedOperation loads the operation and verifies the strategy it belongs to
// is owned by the caller. A foreign operation surfaces as not found.
func (s *JournalService) ownedOperation(ctx context.Context, userID, operationID string) (domain.Operation, error) {
	operation, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return domain.Operation{}, err
	}
	if _, err := s.strategyRepo.GetByID(ctx, userID, operation.StrategyID); err != nil {
		return domain.Operation{}, err
	}
	return operation, nil
}

func validateOperationFields(currency string, hour, minute int, buySell domain.BuySell, operationType string, entryPrice float64) error {
	if currency == "" {
		return domain.Invalid("currency", "currency pair is required")
	}
	if hour < 0 || hour > 23 {
		return domain.Invalid("hour", "hour must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return domain.Invalid("minute", "minute must be between 0 and 59")
	}
	if buySell != domain.BuySellBuy && buySell != domain.BuySellSell {
		return domain.Invalid("buySell", "must be Buy or Sell")
	}
	if operationType == "" {
		return domain.Invalid("operationType", "operation type is required")
	}
	if entryPrice <= 0 {
		return domain.Invalid("entryPrice", "entry price must be positive")
	}
	return nil
}

func emptyIfNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}
