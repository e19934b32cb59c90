package app

import (
	"context"
	"strings"
	"time"

	"video_access_service/internal/playback/domain"
	"video_access_service/internal/playback/repository"
	errprocess "video_access_service/pkg/err"

	"github.com/google/uuid"
)

// GroupUseCase video group admin
type GroupUseCase interface {
	CreateGroup(ctx context.Context, name string) (*domain.VideoAssetGroup, error)
	AddAsset(ctx context.Context, groupID, assetID uuid.UUID) (*domain.VideoAssetGroup, error)
	RemoveAsset(ctx context.Context, groupID, assetID uuid.UUID) (*domain.VideoAssetGroup, error)
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
	SearchGroups(ctx context.Context, query string) ([]domain.VideoAssetGroup, error)
}

type groupUseCase struct {
	groups  repository.VideoGroupRepo
	assets  repository.VideoAssetRepo
	timeout time.Duration
}

// NewGroupUseCase create GroupUseCase
func NewGroupUseCase(groups repository.VideoGroupRepo, assets repository.VideoAssetRepo, timeout time.Duration) GroupUseCase {
	return &groupUseCase{groups: groups, assets: assets, timeout: timeout}
}

func (g *groupUseCase) CreateGroup(ctx context.Context, name string) (*domain.VideoAssetGroup, error) {
	n := domain.NormalizeName(name)
	if n == "" {
		return nil, errprocess.Invalid("Video group name is required.")
	}
	ctx, cancel := boundCtx(ctx, g.timeout)
	defer cancel()

	group := &domain.VideoAssetGroup{ID: uuid.New(), Name: n, VideoAssetIDs: []uuid.UUID{}}
	created, err := g.groups.Create(ctx, group)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, errprocess.Conflict("Video group already exists: %s", n)
	}
	return group, nil
}

// AddAsset a member already present is not written again
func (g *groupUseCase) AddAsset(ctx context.Context, groupID, assetID uuid.UUID) (*domain.VideoAssetGroup, error) {
	ctx, cancel := boundCtx(ctx, g.timeout)
	defer cancel()

	group, err := g.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	asset, err := g.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, errprocess.NotFound("Video asset not found: %s", assetID)
	}
	if group.HasAsset(assetID) {
		return group, nil
	}
	if err := g.groups.AddAsset(ctx, groupID, assetID); err != nil {
		return nil, err
	}
	group.VideoAssetIDs = append(group.VideoAssetIDs, assetID)
	return group, nil
}

func (g *groupUseCase) RemoveAsset(ctx context.Context, groupID, assetID uuid.UUID) (*domain.VideoAssetGroup, error) {
	ctx, cancel := boundCtx(ctx, g.timeout)
	defer cancel()

	group, err := g.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasAsset(assetID) {
		return nil, errprocess.NotFound("Video asset %s not present in group %s", assetID, groupID)
	}
	removed, err := g.groups.RemoveAsset(ctx, groupID, assetID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, errprocess.NotFound("Video asset %s not present in group %s", assetID, groupID)
	}
	kept := make([]uuid.UUID, 0, len(group.VideoAssetIDs))
	for _, id := range group.VideoAssetIDs {
		if id != assetID {
			kept = append(kept, id)
		}
	}
	group.VideoAssetIDs = kept
	return group, nil
}

// DeleteGroup tiers still naming the group keep the id, it resolves to nothing
func (g *groupUseCase) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	ctx, cancel := boundCtx(ctx, g.timeout)
	defer cancel()

	deleted, err := g.groups.Delete(ctx, groupID)
	if err != nil {
		return err
	}
	if !deleted {
		return errprocess.NotFound("Video asset group not found: %s", groupID)
	}
	return nil
}

func (g *groupUseCase) SearchGroups(ctx context.Context, query string) ([]domain.VideoAssetGroup, error) {
	ctx, cancel := boundCtx(ctx, g.timeout)
	defer cancel()
	return g.groups.Search(ctx, strings.TrimSpace(query), searchLimit)
}

func (g *groupUseCase) findGroup(ctx context.Context, id uuid.UUID) (*domain.VideoAssetGroup, error) {
	group, err := g.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, errprocess.NotFound("Video asset group not found: %s", id)
	}
	return group, nil
}
