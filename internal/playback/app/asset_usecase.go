package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"video_access_service/internal/playback/domain"
	"video_access_service/internal/playback/repository"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssetUseCase content key registry
type AssetUseCase interface {
	// ResolveKey raw 16 byte content key of videoPath
	ResolveKey(ctx context.Context, videoPath string) ([]byte, error)
	Upsert(ctx context.Context, req domain.AssetUpsertReq) (*domain.VideoAsset, error)
	Delete(ctx context.Context, videoPath string) (bool, error)
	Search(ctx context.Context, query string) ([]domain.VideoAsset, error)
}

type assetUseCase struct {
	assets  repository.VideoAssetRepo
	timeout time.Duration
}

// NewAssetUseCase create AssetUseCase
func NewAssetUseCase(assets repository.VideoAssetRepo, timeout time.Duration) AssetUseCase {
	return &assetUseCase{assets: assets, timeout: timeout}
}

func (a *assetUseCase) ResolveKey(ctx context.Context, videoPath string) ([]byte, error) {
	path, err := domain.NormalizeVideoPath(videoPath)
	if err != nil {
		return nil, err
	}
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	asset, err := a.assets.FindByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, errprocess.NotFound("Video asset not registered: %s", path)
	}

	key, err := base64.StdEncoding.DecodeString(asset.KeyBase64)
	if err != nil || len(key) != domain.ContentKeySize {
		return nil, errprocess.Wrap(errprocess.ErrIntegrity, fmt.Sprintf("Stored key for %s is not 16 bytes", path), err)
	}
	return key, nil
}

func (a *assetUseCase) Upsert(ctx context.Context, req domain.AssetUpsertReq) (*domain.VideoAsset, error) {
	path, err := domain.NormalizeVideoPath(req.VideoPath)
	if err != nil {
		return nil, err
	}
	keyHex, fromHex, err := parseKeyHex(req.KeyHex)
	if err != nil {
		return nil, err
	}
	keyBase64 := strings.TrimSpace(req.KeyBase64)
	fromBase64, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil || len(fromBase64) != domain.ContentKeySize {
		return nil, errprocess.Invalid("keyBase64 must decode to 16 bytes")
	}
	if !bytes.Equal(fromHex, fromBase64) {
		return nil, errprocess.Invalid("keyHex and keyBase64 must encode the same key")
	}

	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	existing, err := a.assets.FindByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	asset := existing
	if asset == nil {
		asset = &domain.VideoAsset{ID: uuid.New(), VideoPath: path}
	}
	asset.KeyHex = keyHex
	asset.KeyBase64 = keyBase64
	asset.KeyVersion = keyVersion(req.KeyVersion, existing)

	if err := a.assets.Save(ctx, asset); err != nil {
		return nil, err
	}
	logger.Log.Info("video asset key stored", zap.String("videoPath", path), zap.Int("keyVersion", asset.KeyVersion))
	return asset, nil
}

func (a *assetUseCase) Delete(ctx context.Context, videoPath string) (bool, error) {
	path, err := domain.NormalizeVideoPath(videoPath)
	if err != nil {
		return false, err
	}
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()
	return a.assets.DeleteByPath(ctx, path)
}

func (a *assetUseCase) Search(ctx context.Context, query string) ([]domain.VideoAsset, error) {
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()
	return a.assets.Search(ctx, strings.TrimSpace(query), searchLimit)
}

// parseKeyHex upper-cases raw and returns it with the decoded bytes
func parseKeyHex(raw string) (string, []byte, error) {
	keyHex := strings.ToUpper(strings.TrimSpace(raw))
	if len(keyHex) != 2*domain.ContentKeySize {
		return "", nil, errprocess.Invalid("keyHex must be 32 characters")
	}
	for _, c := range keyHex {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return "", nil, errprocess.Invalid("keyHex must be uppercase hex characters")
		}
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return "", nil, errprocess.Invalid("keyHex must be uppercase hex characters")
	}
	return keyHex, key, nil
}

func keyVersion(requested *int, existing *domain.VideoAsset) int {
	v := 0
	switch {
	case requested != nil:
		v = *requested
	case existing != nil:
		v = existing.KeyVersion
	}
	if v < 1 {
		return 1
	}
	return v
}
