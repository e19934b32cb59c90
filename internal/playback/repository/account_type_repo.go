package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"video_access_service/internal/playback/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountTypeRepo definition tier store
type AccountTypeRepo interface {
	AutoMigrate() error
	// FindByName nil when the tier does not exist
	FindByName(ctx context.Context, name string) (*domain.AccountType, error)
	// Create false when the name is taken
	Create(ctx context.Context, a *domain.AccountType) (bool, error)
	// Save replace the entitlement of an existing tier
	Save(ctx context.Context, a *domain.AccountType) error
	List(ctx context.Context) ([]domain.AccountType, error)
}

// accountTypeRow video_group_ids is a JSON array, NULL means unrestricted
type accountTypeRow struct {
	Name          string  `gorm:"primaryKey"`
	VideoGroupIDs *string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (accountTypeRow) TableName() string { return "account_types" }

type accountTypeRepo struct {
	db *gorm.DB
}

// NewAccountTypeRepo create AccountTypeRepo
func NewAccountTypeRepo(db *gorm.DB) AccountTypeRepo {
	return &accountTypeRepo{db: db}
}

func (r *accountTypeRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&accountTypeRow{})
}

func (r *accountTypeRepo) FindByName(ctx context.Context, name string) (*domain.AccountType, error) {
	var row accountTypeRow
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountTypeRepo) Create(ctx context.Context, a *domain.AccountType) (bool, error) {
	row, err := toAccountTypeRow(*a)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *accountTypeRepo) Save(ctx context.Context, a *domain.AccountType) error {
	row, err := toAccountTypeRow(*a)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&accountTypeRow{}).
		Where("name = ?", row.Name).
		Updates(map[string]any{"video_group_ids": row.VideoGroupIDs, "updated_at": time.Now()}).Error
}

func (r *accountTypeRepo) List(ctx context.Context) ([]domain.AccountType, error) {
	var rows []accountTypeRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.AccountType, 0, len(rows))
	for _, row := range rows {
		a, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func toAccountTypeRow(a domain.AccountType) (accountTypeRow, error) {
	row := accountTypeRow{Name: a.Name}
	if a.Entitlement.IsUnrestricted() {
		return row, nil
	}
	raw, err := json.Marshal(a.Entitlement.GroupIDs())
	if err != nil {
		return row, err
	}
	s := string(raw)
	row.VideoGroupIDs = &s
	return row, nil
}

func (row accountTypeRow) toDomain() (domain.AccountType, error) {
	if row.VideoGroupIDs == nil {
		return domain.AccountType{Name: row.Name, Entitlement: domain.Unrestricted()}, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(*row.VideoGroupIDs), &ids); err != nil {
		return domain.AccountType{}, fmt.Errorf("account type %s has malformed video_group_ids: %w", row.Name, err)
	}
	return domain.AccountType{Name: row.Name, Entitlement: domain.RestrictedTo(ids...)}, nil
}
