package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"journal_server/internal/domain"
)

type UserModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func toUserModel(user domain.User) UserModel {
	return UserModel{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func (m UserModel) toDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type TradingAccountModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Balance   float64   `gorm:"column:balance;not null"`
	Currency  string    `gorm:"column:currency;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (TradingAccountModel) TableName() string {
	return "trading_accounts"
}

func toTradingAccountModel(account domain.TradingAccount) TradingAccountModel {
	return TradingAccountModel{
		ID:       account.ID,
		UserID:   account.UserID,
		Name:     account.Name,
		Balance:  account.Balance,
		Currency: account.Currency,
		IsActive: account.IsActive,
	}
}

func (m TradingAccountModel) toDomain() domain.TradingAccount {
	return domain.TradingAccount{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Balance:   m.Balance,
		Currency:  m.Currency,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type RiskPresetModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	UserID         string    `gorm:"column:user_id;not null;index"`
	Name           string    `gorm:"column:name;not null"`
	RiskPercentage float64   `gorm:"column:risk_percentage;not null"`
	MaxDrawdown    float64   `gorm:"column:max_drawdown;not null"`
	MaxOperations  int       `gorm:"column:max_operations;not null"`
	Description    *string   `gorm:"column:description"`
	IsDefault      bool      `gorm:"column:is_default;not null;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (RiskPresetModel) TableName() string {
	return "risk_presets"
}

func toRiskPresetModel(preset domain.RiskPreset) RiskPresetModel {
	return RiskPresetModel{
		ID:             preset.ID,
		UserID:         preset.UserID,
		Name:           preset.Name,
		RiskPercentage: preset.RiskPercentage,
		MaxDrawdown:    preset.MaxDrawdown,
		MaxOperations:  preset.MaxOperations,
		Description:    stringPointerOrNil(preset.Description),
		IsDefault:      preset.IsDefault,
	}
}

func (m RiskPresetModel) toDomain() domain.RiskPreset {
	return domain.RiskPreset{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		RiskPercentage: m.RiskPercentage,
		MaxDrawdown:    m.MaxDrawdown,
		MaxOperations:  m.MaxOperations,
		Description:    stringValueOrEmpty(m.Description),
		IsDefault:      m.IsDefault,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type StrategyModel struct {
	ID             string           `gorm:"column:id;primaryKey"`
	UserID         string           `gorm:"column:user_id;not null;index"`
	Name           string           `gorm:"column:name;not null"`
	Description    *string          `gorm:"column:description"`
	OperationTypes datatypes.JSON   `gorm:"column:operation_types"`
	EntrySignals   datatypes.JSON   `gorm:"column:entry_signals"`
	Operations     []OperationModel `gorm:"foreignKey:StrategyID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at"`
	UpdatedAt      time.Time        `gorm:"column:updated_at"`
}

func (StrategyModel) TableName() string {
	return "strategies"
}

func toStrategyModel(strategy domain.Strategy) StrategyModel {
	return StrategyModel{
		ID:             strategy.ID,
		UserID:         strategy.UserID,
		Name:           strategy.Name,
		Description:    stringPointerOrNil(strategy.Description),
		OperationTypes: labelsToJSON(strategy.OperationTypes),
		EntrySignals:   labelsToJSON(strategy.EntrySignals),
	}
}

func (m StrategyModel) toDomain() domain.Strategy {
	operations := make([]domain.Operation, len(m.Operations))
	for i, op := range m.Operations {
		operations[i] = op.toDomain()
	}

	return domain.Strategy{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		Description:    stringValueOrEmpty(m.Description),
		OperationTypes: labelsFromJSON(m.OperationTypes),
		EntrySignals:   labelsFromJSON(m.EntrySignals),
		Operations:     operations,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type OperationModel struct {
	ID               string               `gorm:"column:id;primaryKey"`
	StrategyID       string               `gorm:"column:strategy_id;not null;index"`
	TradingAccountID *string              `gorm:"column:trading_account_id;index"`
	OperationNumber  int                  `gorm:"column:operation_number;not null"`
	Currency         string               `gorm:"column:currency;not null"`
	Date             time.Time            `gorm:"column:date;not null"`
	Hour             int                  `gorm:"column:hour;not null"`
	Minute           int                  `gorm:"column:minute;not null"`
	DayOfWeek        string               `gorm:"column:day_of_week;not null"`
	WeekNumber       int                  `gorm:"column:week_number;not null"`
	BuySell          string               `gorm:"column:buy_sell;not null"`
	OperationType    string               `gorm:"column:operation_type;not null"`
	EntryPrice       float64              `gorm:"column:entry_price;not null"`
	EntrySignal      *string              `gorm:"column:entry_signal"`
	DailyATRPips     float64              `gorm:"column:daily_atr_percent_pips"`
	RiskManagement   *RiskManagementModel `gorm:"foreignKey:OperationID;constraint:OnDelete:CASCADE"`
	Liquidation      *LiquidationModel    `gorm:"foreignKey:OperationID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time            `gorm:"column:created_at"`
	UpdatedAt        time.Time            `gorm:"column:updated_at"`
}

func (OperationModel) TableName() string {
	return "operations"
}

func toOperationModel(op domain.Operation) OperationModel {
	return OperationModel{
		ID:               op.ID,
		StrategyID:       op.StrategyID,
		TradingAccountID: stringPointerOrNil(op.TradingAccountID),
		OperationNumber:  op.OperationNumber,
		Currency:         op.Currency,
		Date:             op.Date,
		Hour:             op.Hour,
		Minute:           op.Minute,
		DayOfWeek:        op.DayOfWeek,
		WeekNumber:       op.WeekNumber,
		BuySell:          string(op.BuySell),
		OperationType:    op.OperationType,
		EntryPrice:       op.EntryPrice,
		EntrySignal:      stringPointerOrNil(op.EntrySignal),
		DailyATRPips:     op.DailyATRPips,
	}
}

func (m OperationModel) toDomain() domain.Operation {
	op := domain.Operation{
		ID:               m.ID,
		StrategyID:       m.StrategyID,
		TradingAccountID: stringValueOrEmpty(m.TradingAccountID),
		OperationNumber:  m.OperationNumber,
		Currency:         m.Currency,
		Date:             m.Date,
		Hour:             m.Hour,
		Minute:           m.Minute,
		DayOfWeek:        m.DayOfWeek,
		WeekNumber:       m.WeekNumber,
		BuySell:          domain.BuySell(m.BuySell),
		OperationType:    m.OperationType,
		EntryPrice:       m.EntryPrice,
		EntrySignal:      stringValueOrEmpty(m.EntrySignal),
		DailyATRPips:     m.DailyATRPips,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	if m.RiskManagement != nil {
		rm := m.RiskManagement.toDomain()
		op.RiskManagement = &rm
	}
	if m.Liquidation != nil {
		liq := m.Liquidation.toDomain()
		op.Liquidation = &liq
	}

	return op
}

type RiskManagementModel struct {
	ID                       string    `gorm:"column:id;primaryKey"`
	OperationID              string    `gorm:"column:operation_id;not null;uniqueIndex"`
	EntryQuotation           float64   `gorm:"column:entry_quotation;not null"`
	ProfitPotentialRef       *string   `gorm:"column:profit_potential_ref"`
	ProfitPotentialQuotation float64   `gorm:"column:profit_potential_quotation"`
	ProfitPotentialSize      float64   `gorm:"column:profit_potential_size"`
	StopReference            *string   `gorm:"column:stop_reference"`
	StopQuotation            float64   `gorm:"column:stop_quotation;not null"`
	StopSize                 float64   `gorm:"column:stop_size;not null"`
	AccountBalance           float64   `gorm:"column:account_balance"`
	LotQuantity              float64   `gorm:"column:lot_quantity"`
	CreatedAt                time.Time `gorm:"column:created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at"`
}

func (RiskManagementModel) TableName() string {
	return "risk_managements"
}

func toRiskManagementModel(rm domain.RiskManagement) RiskManagementModel {
	return RiskManagementModel{
		ID:                       rm.ID,
		OperationID:              rm.OperationID,
		EntryQuotation:           rm.EntryQuotation,
		ProfitPotentialRef:       stringPointerOrNil(rm.ProfitPotentialRef),
		ProfitPotentialQuotation: rm.ProfitPotentialQuotation,
		ProfitPotentialSize:      rm.ProfitPotentialSize,
		StopReference:            stringPointerOrNil(rm.StopReference),
		StopQuotation:            rm.StopQuotation,
		StopSize:                 rm.StopSize,
		AccountBalance:           rm.AccountBalance,
		LotQuantity:              rm.LotQuantity,
	}
}

func (m RiskManagementModel) toDomain() domain.RiskManagement {
	return domain.RiskManagement{
		ID:                       m.ID,
		OperationID:              m.OperationID,
		EntryQuotation:           m.EntryQuotation,
		ProfitPotentialRef:       stringValueOrEmpty(m.ProfitPotentialRef),
		ProfitPotentialQuotation: m.ProfitPotentialQuotation,
		ProfitPotentialSize:      m.ProfitPotentialSize,
		StopReference:            stringValueOrEmpty(m.StopReference),
		StopQuotation:            m.StopQuotation,
		StopSize:                 m.StopSize,
		AccountBalance:           m.AccountBalance,
		LotQuantity:              m.LotQuantity,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

type LiquidationModel struct {
	ID                    string    `gorm:"column:id;primaryKey"`
	OperationID           string    `gorm:"column:operation_id;not null;uniqueIndex"`
	LiquidationDate       time.Time `gorm:"column:liquidation_date;not null"`
	LiquidationHour       int       `gorm:"column:liquidation_hour;not null"`
	LiquidationMinute     int       `gorm:"column:liquidation_minute;not null"`
	LiquidationQuotation  float64   `gorm:"column:liquidation_quotation;not null"`
	BalanceInPips         float64   `gorm:"column:balance_in_pips;not null"`
	LiquidationProportion float64   `gorm:"column:liquidation_proportion"`
	ProfitOrLoss          string    `gorm:"column:profit_or_loss;not null"`
	OperationRisk         float64   `gorm:"column:operation_risk"`
	LiquidationReason     *string   `gorm:"column:liquidation_reason"`
	LiquidationType       *string   `gorm:"column:liquidation_type"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (LiquidationModel) TableName() string {
	return "liquidations"
}

func toLiquidationModel(liq domain.Liquidation) LiquidationModel {
	return LiquidationModel{
		ID:                    liq.ID,
		OperationID:           liq.OperationID,
		LiquidationDate:       liq.LiquidationDate,
		LiquidationHour:       liq.LiquidationHour,
		LiquidationMinute:     liq.LiquidationMinute,
		LiquidationQuotation:  liq.LiquidationQuotation,
		BalanceInPips:         liq.BalanceInPips,
		LiquidationProportion: liq.LiquidationProportion,
		ProfitOrLoss:          string(liq.ProfitOrLoss),
		OperationRisk:         liq.OperationRisk,
		LiquidationReason:     stringPointerOrNil(liq.LiquidationReason),
		LiquidationType:       stringPointerOrNil(liq.LiquidationType),
	}
}

func (m LiquidationModel) toDomain() domain.Liquidation {
	return domain.Liquidation{
		ID:                    m.ID,
		OperationID:           m.OperationID,
		LiquidationDate:       m.LiquidationDate,
		LiquidationHour:       m.LiquidationHour,
		LiquidationMinute:     m.LiquidationMinute,
		LiquidationQuotation:  m.LiquidationQuotation,
		BalanceInPips:         m.BalanceInPips,
		LiquidationProportion: m.LiquidationProportion,
		ProfitOrLoss:          domain.TradeResult(m.ProfitOrLoss),
		OperationRisk:         m.OperationRisk,
		LiquidationReason:     stringValueOrEmpty(m.LiquidationReason),
		LiquidationType:       stringValueOrEmpty(m.LiquidationType),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

type SessionModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

func toSessionModel(session domain.Session) SessionModel {
	return SessionModel{
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}
}

func (m SessionModel) toDomain() domain.Session {
	return domain.Session{
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

func stringPointerOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func labelsToJSON(labels []string) datatypes.JSON {
	if labels == nil {
		labels = []string{}
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func labelsFromJSON(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return []string{}
	}
	return labels
}
