package repository

import (
	"context"
	"errors"
	"time"

	"video_access_service/internal/playback/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserAccountTypeRepo definition user to tier assignment store
type UserAccountTypeRepo interface {
	AutoMigrate() error
	// FindByUserID nil when the user has no tier yet
	FindByUserID(ctx context.Context, userID string) (*domain.UserAccountType, error)
	// CreateIfAbsent INSERT ... ON CONFLICT DO NOTHING, true when this call inserted the row
	CreateIfAbsent(ctx context.Context, u *domain.UserAccountType) (bool, error)
	// Save insert or overwrite the user's tier
	Save(ctx context.Context, u *domain.UserAccountType) error
}

type userAccountTypeRepo struct {
	db *gorm.DB
}

// NewUserAccountTypeRepo create UserAccountTypeRepo
func NewUserAccountTypeRepo(db *gorm.DB) UserAccountTypeRepo {
	return &userAccountTypeRepo{db: db}
}

func (r *userAccountTypeRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.UserAccountType{})
}

func (r *userAccountTypeRepo) FindByUserID(ctx context.Context, userID string) (*domain.UserAccountType, error) {
	var u domain.UserAccountType
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userAccountTypeRepo) CreateIfAbsent(ctx context.Context, u *domain.UserAccountType) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(u)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userAccountTypeRepo) Save(ctx context.Context, u *domain.UserAccountType) error {
	u.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"account_type", "updated_at"}),
	}).Create(u).Error
}
