package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"journal_server/internal/domain"
)

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) (*GormSessionRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormSessionRepository{db: db}, nil
}

func (r *GormSessionRepository) Create(ctx context.Context, session domain.Session) error {
	model := toSessionModel(session)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormSessionRepository) GetByToken(ctx context.Context, token string) (domain.Session, error) {
	var model SessionModel
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, err
	}
	return model.toDomain(), nil
}

func (r *GormSessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&SessionModel{}).Error
}

func (r *GormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&SessionModel{})
	return result.RowsAffected, result.Error
}
