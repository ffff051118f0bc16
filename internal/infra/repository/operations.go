package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormOperationRepository struct {
	db *gorm.DB
}

func NewGormOperationRepository(db *gorm.DB) (*GormOperationRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormOperationRepository{db: db}, nil
}

func (r *GormOperationRepository) Create(ctx context.Context, operation domain.Operation) error {
	model := toOperationModel(operation)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormOperationRepository) Update(ctx context.Context, operation domain.Operation) error {
	result := r.db.WithContext(ctx).
		Model(&OperationModel{}).
		Where("id = ?", operation.ID).
		Updates(map[string]interface{}{
			"currency":               operation.Currency,
			"date":                   operation.Date,
			"hour":                   operation.Hour,
			"minute":                 operation.Minute,
			"day_of_week":            operation.DayOfWeek,
			"week_number":            operation.WeekNumber,
			"buy_sell":               string(operation.BuySell),
			"operation_type":         operation.OperationType,
			"entry_price":            operation.EntryPrice,
			"entry_signal":           stringPointerOrNil(operation.EntrySignal),
			"daily_atr_percent_pips": operation.DailyATRPips,
			"updated_at":             gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormOperationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("operation_id = ?", id).
			Delete(&RiskManagementModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("operation_id = ?", id).
			Delete(&LiquidationModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&OperationModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *GormOperationRepository) GetByID(ctx context.Context, id string) (domain.Operation, error) {
	var model OperationModel
	err := r.db.WithContext(ctx).
		Preload("RiskManagement").
		Preload("Liquidation").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Operation{}, domain.ErrNotFound
		}
		return domain.Operation{}, err
	}
	return model.toDomain(), nil
}

func (r *GormOperationRepository) ListByStrategy(ctx context.Context, strategyID string, filter domain.OperationFilter) ([]domain.Operation, error) {
	query := r.db.WithContext(ctx).
		Preload("RiskManagement").
		Preload("Liquidation").
		Where("strategy_id = ?", strategyID).
		Order("date DESC")

	switch filter {
	case domain.OperationFilterNoRiskManagement:
		query = query.Where("id NOT IN (?)",
			r.db.Model(&RiskManagementModel{}).Select("operation_id"))
	case domain.OperationFilterNoLiquidation:
		query = query.Where("id NOT IN (?)",
			r.db.Model(&LiquidationModel{}).Select("operation_id"))
	}

	var models []OperationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	operations := make([]domain.Operation, len(models))
	for i, model := range models {
		operations[i] = model.toDomain()
	}

	return operations, nil
}

func (r *GormOperationRepository) CountByStrategy(ctx context.Context, strategyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OperationModel{}).
		Where("strategy_id = ?", strategyID).
		Count(&count).Error
	return count, err
}

func (r *GormOperationRepository) AddRiskManagement(ctx context.Context, rm domain.RiskManagement) error {
	model := toRiskManagementModel(rm)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormOperationRepository) AddLiquidation(ctx context.Context, liq domain.Liquidation) error {
	model := toLiquidationModel(liq)
	return r.db.WithContext(ctx).Create(&model).Error
}
