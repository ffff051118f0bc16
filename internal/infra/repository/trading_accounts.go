package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormTradingAccountRepository struct {
	db *gorm.DB
}

func NewGormTradingAccountRepository(db *gorm.DB) (*GormTradingAccountRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradingAccountRepository{db: db}, nil
}

func (r *GormTradingAccountRepository) Create(ctx context.Context, account domain.TradingAccount) error {
	model := toTradingAccountModel(account)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormTradingAccountRepository) Update(ctx context.Context, account domain.TradingAccount) error {
	result := r.db.WithContext(ctx).
		Model(&TradingAccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"name":       account.Name,
			"balance":    account.Balance,
			"currency":   account.Currency,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormTradingAccountRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&TradingAccountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormTradingAccountRepository) GetByID(ctx context.Context, userID, id string) (domain.TradingAccount, error) {
	var model TradingAccountModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TradingAccount{}, domain.ErrNotFound
		}
		return domain.TradingAccount{}, err
	}

	account := model.toDomain()
	count, err := r.CountOperations(ctx, id)
	if err != nil {
		return domain.TradingAccount{}, err
	}
	account.OperationCount = count

	return account, nil
}

func (r *GormTradingAccountRepository) ListByUser(ctx context.Context, userID string) ([]domain.TradingAccount, error) {
	var models []TradingAccountModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	accounts := make([]domain.TradingAccount, len(models))
	for i, model := range models {
		accounts[i] = model.toDomain()
		count, err := r.CountOperations(ctx, model.ID)
		if err != nil {
			return nil, err
		}
		accounts[i].OperationCount = count
	}

	return accounts, nil
}

func (r *GormTradingAccountRepository) ListActive(ctx context.Context, userID string) ([]domain.TradingAccount, error) {
	var models []TradingAccountModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	accounts := make([]domain.TradingAccount, len(models))
	for i, model := range models {
		accounts[i] = model.toDomain()
	}

	return accounts, nil
}

func (r *GormTradingAccountRepository) SetActive(ctx context.Context, id string, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&TradingAccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormTradingAccountRepository) CountOperations(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OperationModel{}).
		Where("trading_account_id = ?", accountID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
