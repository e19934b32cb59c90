package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"video_access_service/internal/playback/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoGroupRepo definition video group store
type VideoGroupRepo interface {
	AutoMigrate() error
	// Create false when the name is taken
	Create(ctx context.Context, g *domain.VideoAssetGroup) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoAssetGroup, error)
	// FindByIDs unknown ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.VideoAssetGroup, error)
	AddAsset(ctx context.Context, groupID, assetID uuid.UUID) error
	RemoveAsset(ctx context.Context, groupID, assetID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]domain.VideoAssetGroup, error)
}

type videoGroupRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (videoGroupRow) TableName() string { return "video_asset_groups" }

type videoGroupAssetRow struct {
	GroupID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

func (videoGroupAssetRow) TableName() string { return "video_asset_group_assets" }

type videoGroupRepo struct {
	db *gorm.DB
}

// NewVideoGroupRepo create VideoGroupRepo
func NewVideoGroupRepo(db *gorm.DB) VideoGroupRepo {
	return &videoGroupRepo{db: db}
}

func (r *videoGroupRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&videoGroupRow{}, &videoGroupAssetRow{})
}

func (r *videoGroupRepo) Create(ctx context.Context, g *domain.VideoAssetGroup) (bool, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	row := videoGroupRow{ID: g.ID, Name: g.Name}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *videoGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoAssetGroup, error) {
	groups, err := r.FindByIDs(ctx, []uuid.UUID{id})
	if err != nil || len(groups) == 0 {
		return nil, err
	}
	return &groups[0], nil
}

func (r *videoGroupRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.VideoAssetGroup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []videoGroupRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withAssets(ctx, rows)
}

func (r *videoGroupRepo) AddAsset(ctx context.Context, groupID, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&videoGroupAssetRow{GroupID: groupID, AssetID: assetID}).Error
}

func (r *videoGroupRepo) RemoveAsset(ctx context.Context, groupID, assetID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND asset_id = ?", groupID, assetID).
		Delete(&videoGroupAssetRow{})
	return res.RowsAffected > 0, res.Error
}

func (r *videoGroupRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&videoGroupAssetRow{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&videoGroupRow{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

func (r *videoGroupRepo) Search(ctx context.Context, query string, limit int) ([]domain.VideoAssetGroup, error) {
	var rows []videoGroupRow
	tx := r.db.WithContext(ctx).Order("name ASC").Limit(limit)
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		tx = tx.Where("name LIKE ?", "%"+escapeLike(q)+"%")
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withAssets(ctx, rows)
}

// withAssets loads memberships of rows in one query
func (r *videoGroupRepo) withAssets(ctx context.Context, rows []videoGroupRow) ([]domain.VideoAssetGroup, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var members []videoGroupAssetRow
	err := r.db.WithContext(ctx).Where("group_id IN ?", ids).Order("created_at ASC").Find(&members).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	byGroup := make(map[uuid.UUID][]uuid.UUID, len(rows))
	for _, m := range members {
		byGroup[m.GroupID] = append(byGroup[m.GroupID], m.AssetID)
	}

	groups := make([]domain.VideoAssetGroup, 0, len(rows))
	for _, row := range rows {
		assets := byGroup[row.ID]
		if assets == nil {
			assets = []uuid.UUID{}
		}
		groups = append(groups, domain.VideoAssetGroup{ID: row.ID, Name: row.Name, VideoAssetIDs: assets})
	}
	return groups, nil
}

// escapeLike neutralises LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
