package repository

import (
	"context"
	"errors"

	"video_access_service/internal/playback/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoAssetRepo definition content key store
type VideoAssetRepo interface {
	AutoMigrate() error
	// FindByPath nil when no asset is registered for path
	FindByPath(ctx context.Context, path string) (*domain.VideoAsset, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoAsset, error)
	// Save insert or replace the key material of asset.VideoPath
	Save(ctx context.Context, asset *domain.VideoAsset) error
	DeleteByPath(ctx context.Context, path string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]domain.VideoAsset, error)
}

type videoAssetRepo struct {
	db *gorm.DB
}

// NewVideoAssetRepo create VideoAssetRepo
func NewVideoAssetRepo(db *gorm.DB) VideoAssetRepo {
	return &videoAssetRepo{db: db}
}

func (r *videoAssetRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.VideoAsset{})
}

func (r *videoAssetRepo) FindByPath(ctx context.Context, path string) (*domain.VideoAsset, error) {
	var a domain.VideoAsset
	err := r.db.WithContext(ctx).Where("video_path = ?", path).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *videoAssetRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoAsset, error) {
	var a domain.VideoAsset
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Save single statement upsert keyed on video_path, the stored id wins on conflict
func (r *videoAssetRepo) Save(ctx context.Context, asset *domain.VideoAsset) error {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_path"}},
			DoUpdates: clause.AssignmentColumns([]string{"key_hex", "key_base64", "key_version", "updated_at"}),
		},
		clause.Returning{},
	).Create(asset).Error
}

func (r *videoAssetRepo) DeleteByPath(ctx context.Context, path string) (bool, error) {
	res := r.db.WithContext(ctx).Where("video_path = ?", path).Delete(&domain.VideoAsset{})
	return res.RowsAffected > 0, res.Error
}

// Search case insensitive substring match on the path
func (r *videoAssetRepo) Search(ctx context.Context, query string, limit int) ([]domain.VideoAsset, error) {
	var assets []domain.VideoAsset
	tx := r.db.WithContext(ctx).Order("video_path ASC").Limit(limit)
	if query != "" {
		tx = tx.Where("video_path ILIKE ?", "%"+escapeLike(query)+"%")
	}
	if err := tx.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}
