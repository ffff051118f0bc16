package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormStrategyRepository struct {
	db *gorm.DB
}

func NewGormStrategyRepository(db *gorm.DB) (*GormStrategyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormStrategyRepository{db: db}, nil
}

func (r *GormStrategyRepository) Create(ctx context.Context, strategy domain.Strategy) error {
	model := toStrategyModel(strategy)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormStrategyRepository) Update(ctx context.Context, strategy domain.Strategy) error {
	updates := map[string]interface{}{
		"name":        strategy.Name,
		"description": stringPointerOrNil(strategy.Description),
		"updated_at":  gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if strategy.OperationTypes != nil {
		updates["operation_types"] = labelsToJSON(strategy.OperationTypes)
	}
	if strategy.EntrySignals != nil {
		updates["entry_signals"] = labelsToJSON(strategy.EntrySignals)
	}

	result := r.db.WithContext(ctx).
		Model(&StrategyModel{}).
		Where("id = ?", strategy.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete cascades to the strategy's operations and their risk-management and
// liquidation children in a single transaction.
func (r *GormStrategyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var operationIDs []string
		if err := tx.Model(&OperationModel{}).
			Where("strategy_id = ?", id).
			Pluck("id", &operationIDs).Error; err != nil {
			return err
		}

		if len(operationIDs) > 0 {
			if err := tx.Where("operation_id IN ?", operationIDs).
				Delete(&RiskManagementModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("operation_id IN ?", operationIDs).
				Delete(&LiquidationModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("strategy_id = ?", id).
				Delete(&OperationModel{}).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&StrategyModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *GormStrategyRepository) GetByID(ctx context.Context, userID, id string) (domain.Strategy, error) {
	var model StrategyModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Strategy{}, domain.ErrNotFound
		}
		return domain.Strategy{}, err
	}
	return model.toDomain(), nil
}

func (r *GormStrategyRepository) ListByUser(ctx context.Context, userID string) ([]domain.Strategy, error) {
	var models []StrategyModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Operations").
		Preload("Operations.RiskManagement").
		Preload("Operations.Liquidation").
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	strategies := make([]domain.Strategy, len(models))
	for i, model := range models {
		strategies[i] = model.toDomain()
	}

	return strategies, nil
}
