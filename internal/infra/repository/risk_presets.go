package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormRiskPresetRepository struct {
	db *gorm.DB
}

func NewGormRiskPresetRepository(db *gorm.DB) (*GormRiskPresetRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormRiskPresetRepository{db: db}, nil
}

func (r *GormRiskPresetRepository) Create(ctx context.Context, preset domain.RiskPreset) error {
	model := toRiskPresetModel(preset)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormRiskPresetRepository) Update(ctx context.Context, preset domain.RiskPreset) error {
	result := r.db.WithContext(ctx).
		Model(&RiskPresetModel{}).
		Where("id = ?", preset.ID).
		Updates(map[string]interface{}{
			"name":            preset.Name,
			"risk_percentage": preset.RiskPercentage,
			"max_drawdown":    preset.MaxDrawdown,
			"max_operations":  preset.MaxOperations,
			"description":     stringPointerOrNil(preset.Description),
			"updated_at":      gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormRiskPresetRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&RiskPresetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormRiskPresetRepository) GetByID(ctx context.Context, userID, id string) (domain.RiskPreset, error) {
	var model RiskPresetModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RiskPreset{}, domain.ErrNotFound
		}
		return domain.RiskPreset{}, err
	}
	return model.toDomain(), nil
}

func (r *GormRiskPresetRepository) GetDefault(ctx context.Context, userID string) (domain.RiskPreset, error) {
	var model RiskPresetModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RiskPreset{}, domain.ErrNotFound
		}
		return domain.RiskPreset{}, err
	}
	return model.toDomain(), nil
}

func (r *GormRiskPresetRepository) ListByUser(ctx context.Context, userID string) ([]domain.RiskPreset, error) {
	var models []RiskPresetModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	presets := make([]domain.RiskPreset, len(models))
	for i, model := range models {
		presets[i] = model.toDomain()
	}

	return presets, nil
}

func (r *GormRiskPresetRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RiskPresetModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *GormRiskPresetRepository) CountOthers(ctx context.Context, userID, excludeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RiskPresetModel{}).
		Where("user_id = ? AND id <> ?", userID, excludeID).
		Count(&count).Error
	return count, err
}

// SetDefault clears every default flag for the user and sets the target in
// one transaction. Concurrent callers serialize on the row locks, so the
// user always ends with exactly one default.
func (r *GormRiskPresetRepository) SetDefault(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&RiskPresetModel{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&RiskPresetModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{
				"is_default": true,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
