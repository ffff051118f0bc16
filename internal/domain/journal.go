package domain

import "time"

type BuySell string

const (
	BuySellBuy  BuySell = "Buy"
	BuySellSell BuySell = "Sell"
)

// TradeResult classifies the outcome of a liquidated operation.
type TradeResult string

const (
	TradeResultProfit    TradeResult = "PROFIT"
	TradeResultLoss      TradeResult = "LOSS"
	TradeResultBreakEven TradeResult = "BREAK_EVEN"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TradingAccount struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
	IsActive bool    `json:"isActive"`
	// OperationCount is the number of operations referencing this account.
	// Populated on reads, never written.
	OperationCount int64     `json:"operationCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type RiskPreset struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	RiskPercentage float64   `json:"riskPercentage"`
	MaxDrawdown    float64   `json:"maxDrawdown"`
	MaxOperations  int       `json:"maxOperations"`
	Description    string    `json:"description,omitempty"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RiskCalculation is the result of applying a preset to an account balance.
type RiskCalculation struct {
	Preset         RiskPreset `json:"preset"`
	RiskAmount     float64    `json:"riskAmount"`
	RiskPercentage float64    `json:"riskPercentage"`
	MaxDrawdown    float64    `json:"maxDrawdown"`
	MaxOperations  int        `json:"maxOperations"`
}

type Strategy struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	OperationTypes []string    `json:"operationTypes"`
	EntrySignals   []string    `json:"entrySignals"`
	Operations     []Operation `json:"operations,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type Operation struct {
	ID               string          `json:"id"`
	StrategyID       string          `json:"strategyId"`
	TradingAccountID string          `json:"tradingAccountId,omitempty"`
	OperationNumber  int             `json:"operationNumber"`
	Currency         string          `json:"currency"`
	Date             time.Time       `json:"date"`
	Hour             int             `json:"hour"`
	Minute           int             `json:"minute"`
	DayOfWeek        string          `json:"dayOfWeek"`
	WeekNumber       int             `json:"weekNumber"`
	BuySell          BuySell         `json:"buySell"`
	OperationType    string          `json:"operationType"`
	EntryPrice       float64         `json:"entryPrice"`
	EntrySignal      string          `json:"entrySignal,omitempty"`
	DailyATRPips     float64         `json:"dailyAtrPercentPips,omitempty"`
	RiskManagement   *RiskManagement `json:"riskManagement,omitempty"`
	Liquidation      *Liquidation    `json:"liquidation,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Closed reports whether the operation has been liquidated.
func (o Operation) Closed() bool {
	return o.Liquidation != nil
}

type RiskManagement struct {
	ID                       string    `json:"id"`
	OperationID              string    `json:"operationId"`
	EntryQuotation           float64   `json:"entryQuotation"`
	ProfitPotentialRef       string    `json:"profitPotentialRef,omitempty"`
	ProfitPotentialQuotation float64   `json:"profitPotentialQuotation,omitempty"`
	ProfitPotentialSize      float64   `json:"profitPotentialSize,omitempty"`
	StopReference            string    `json:"stopReference,omitempty"`
	StopQuotation            float64   `json:"stopQuotation"`
	StopSize                 float64   `json:"stopSize"`
	AccountBalance           float64   `json:"accountBalance"`
	LotQuantity              float64   `json:"lotQuantity"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

type Liquidation struct {
	ID                    string      `json:"id"`
	OperationID           string      `json:"operationId"`
	LiquidationDate       time.Time   `json:"liquidationDate"`
	LiquidationHour       int         `json:"liquidationHour"`
	LiquidationMinute     int         `json:"liquidationMinute"`
	LiquidationQuotation  float64     `json:"liquidationQuotation"`
	BalanceInPips         float64     `json:"balanceInPips"`
	LiquidationProportion float64     `json:"liquidationProportion"`
	ProfitOrLoss          TradeResult `json:"profitOrLoss"`
	OperationRisk         float64     `json:"operationRisk"`
	LiquidationReason     string      `json:"liquidationReason,omitempty"`
	LiquidationType       string      `json:"liquidationType,omitempty"`
	CreatedAt             time.Time   `json:"createdAt"`
	UpdatedAt             time.Time   `json:"updatedAt"`
}

// Session is an issued bearer token for a resolved user identity.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
