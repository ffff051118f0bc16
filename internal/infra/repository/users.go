package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_server/internal/domain"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormUserRepository{db: db}, nil
}

// UpsertUser provisions the user row idempotently. Name and email are only
// filled when the existing row has none, so repeated logins never clobber
// profile data.
func (r *GormUserRepository) UpsertUser(ctx context.Context, user domain.User) error {
	model := toUserModel(user)

	assignments := clause.Assignments(map[string]interface{}{
		"name":       gorm.Expr("COALESCE(NULLIF(users.name, ''), EXCLUDED.name)"),
		"email":      gorm.Expr("COALESCE(NULLIF(users.email, ''), EXCLUDED.email)"),
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	})

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: assignments,
		}).
		Create(&model).Error
}

func (r *GormUserRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return model.toDomain(), nil
}
