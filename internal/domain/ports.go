package domain

import (
	"context"
	"time"
)

// OperationFilter narrows ListByStrategy to operations still missing a child
// record, implementing the "available for risk management / liquidation"
// selections.
type OperationFilter string

const (
	OperationFilterAll              OperationFilter = ""
	OperationFilterNoRiskManagement OperationFilter = "risk_management"
	OperationFilterNoLiquidation    OperationFilter = "liquidation"
)

type UserRepository interface {
	UpsertUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, userID string) (User, error)
}

type TradingAccountRepository interface {
	Create(ctx context.Context, account TradingAccount) error
	Update(ctx context.Context, account TradingAccount) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, userID, id string) (TradingAccount, error)
	ListByUser(ctx context.Context, userID string) ([]TradingAccount, error)
	ListActive(ctx context.Context, userID string) ([]TradingAccount, error)
	SetActive(ctx context.Context, id string, active bool) error
	CountOperations(ctx context.Context, accountID string) (int64, error)
}

type RiskPresetRepository interface {
	Create(ctx context.Context, preset RiskPreset) error
	Update(ctx context.Context, preset RiskPreset) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, userID, id string) (RiskPreset, error)
	GetDefault(ctx context.Context, userID string) (RiskPreset, error)
	ListByUser(ctx context.Context, userID string) ([]RiskPreset, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountOthers(ctx context.Context, userID, excludeID string) (int64, error)
	// SetDefault clears the default flag on every preset of the user and sets
	// it on the target in one transaction, so concurrent calls can never
	// leave zero or two defaults.
	SetDefault(ctx context.Context, userID, id string) error
}

type StrategyRepository interface {
	Create(ctx context.Context, strategy Strategy) error
	Update(ctx context.Context, strategy Strategy) error
	// Delete removes the strategy together with its operations and their
	// risk-management and liquidation children in one transaction.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, userID, id string) (Strategy, error)
	// ListByUser returns the user's strategies with operations and children
	// preloaded, newest strategy first.
	ListByUser(ctx context.Context, userID string) ([]Strategy, error)
}

type OperationRepository interface {
	Create(ctx context.Context, operation Operation) error
	Update(ctx context.Context, operation Operation) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Operation, error)
	ListByStrategy(ctx context.Context, strategyID string, filter OperationFilter) ([]Operation, error)
	CountByStrategy(ctx context.Context, strategyID string) (int64, error)
	AddRiskManagement(ctx context.Context, rm RiskManagement) error
	AddLiquidation(ctx context.Context, liq Liquidation) error
}

type SessionRepository interface {
	Create(ctx context.Context, session Session) error
	GetByToken(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
