package app

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"video_access_service/internal/playback/domain"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testKey       = []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}
	testKeyHex    = "000102030405060708090A0B0C0D0E0F"
	testKeyBase64 = base64.StdEncoding.EncodeToString(testKey)
)

func TestAssetUseCase_ResolveKey(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("stored key round trips", func(t *testing.T) {
		repo := new(MockVideoAssetRepo)
		repo.On("FindByPath", mock.Anything, "clips/swing1").
			Return(&domain.VideoAsset{VideoPath: "clips/swing1", KeyHex: testKeyHex, KeyBase64: testKeyBase64}, nil).Once()

		key, err := NewAssetUseCase(repo, time.Second).ResolveKey(ctx, "/clips/swing1/")
		require.NoError(t, err)
		assert.Equal(t, testKey, key)
		repo.AssertExpectations(t)
	})

	t.Run("unregistered path", func(t *testing.T) {
		repo := new(MockVideoAssetRepo)
		repo.On("FindByPath", mock.Anything, "clips/none").Return(nil, nil).Once()

		_, err := NewAssetUseCase(repo, time.Second).ResolveKey(ctx, "clips/none")
		assert.True(t, errors.Is(err, errprocess.ErrNotFound))
		assert.Equal(t, "Video asset not registered: clips/none", errprocess.PublicMessage(err, ""))
	})

	for _, size := range []int{15, 17} {
		stored := base64.StdEncoding.EncodeToString(make([]byte, size))
		repo := new(MockVideoAssetRepo)
		repo.On("FindByPath", mock.Anything, "clips/bad").Return(&domain.VideoAsset{KeyBase64: stored}, nil).Once()

		_, err := NewAssetUseCase(repo, time.Second).ResolveKey(ctx, "clips/bad")
		assert.True(t, errors.Is(err, errprocess.ErrIntegrity), "size %d", size)
	}

	t.Run("blank path never reaches the store", func(t *testing.T) {
		repo := new(MockVideoAssetRepo)
		_, err := NewAssetUseCase(repo, time.Second).ResolveKey(ctx, " / ")
		assert.True(t, errors.Is(err, errprocess.ErrInvalidArgument))
		repo.AssertNotCalled(t, "FindByPath", mock.Anything, mock.Anything)
	})
}

func TestAssetUseCase_Upsert(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("new asset stores upper hex and version 1", func(t *testing.T) {
		repo := new(MockVideoAssetRepo)
		repo.On("FindByPath", mock.Anything, "clips/swing1").Return(nil, nil).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(a *domain.VideoAsset) bool {
			return a.VideoPath == "clips/swing1" && a.KeyHex == testKeyHex && a.KeyBase64 == testKeyBase64 &&
				a.KeyVersion == 1 && a.ID != uuid.Nil
		})).Return(nil).Once()

		asset, err := NewAssetUseCase(repo, time.Second).Upsert(ctx, domain.AssetUpsertReq{
			VideoPath: "/clips/swing1",
			KeyHex:    " 000102030405060708090a0b0c0d0e0f ",
			KeyBase64: testKeyBase64 + "\n",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, asset.KeyVersion)
		repo.AssertExpectations(t)
	})

	t.Run("existing version kept when omitted", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockVideoAssetRepo)
		repo.On("FindByPath", mock.Anything, "clips/swing1").
			Return(&domain.VideoAsset{ID: id, VideoPath: "clips/swing1", KeyVersion: 4}, nil).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(a *domain.VideoAsset) bool {
			return a.ID == id && a.KeyVersion == 4
		})).Return(nil).Once()

		_, err := NewAssetUseCase(repo, time.Second).Upsert(ctx, domain.AssetUpsertReq{
			VideoPath: "clips/swing1", KeyHex: testKeyHex, KeyBase64: testKeyBase64,
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("requested version below one becomes one", func(t *testing.T) {
		zero := 0
		repo := new(MockVideoAssetRepo)
		repo.On("FindByPath", mock.Anything, "clips/swing1").
			Return(&domain.VideoAsset{ID: uuid.New(), VideoPath: "clips/swing1", KeyVersion: 7}, nil).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(a *domain.VideoAsset) bool { return a.KeyVersion == 1 })).Return(nil).Once()

		_, err := NewAssetUseCase(repo, time.Second).Upsert(ctx, domain.AssetUpsertReq{
			VideoPath: "clips/swing1", KeyHex: testKeyHex, KeyBase64: testKeyBase64, KeyVersion: &zero,
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	invalid := []struct {
		msg string
		req domain.AssetUpsertReq
	}{
		{
			msg: "keyHex must be 32 characters",
			req: domain.AssetUpsertReq{VideoPath: "a", KeyHex: testKeyHex[:31], KeyBase64: testKeyBase64},
		},
		{
			msg: "keyHex must be uppercase hex characters",
			req: domain.AssetUpsertReq{VideoPath: "a", KeyHex: "G" + testKeyHex[1:], KeyBase64: testKeyBase64},
		},
		{
			msg: "keyBase64 must decode to 16 bytes",
			req: domain.AssetUpsertReq{VideoPath: "a", KeyHex: testKeyHex, KeyBase64: base64.StdEncoding.EncodeToString(testKey[:15])},
		},
		{
			msg: "keyHex and keyBase64 must encode the same key",
			req: domain.AssetUpsertReq{VideoPath: "a", KeyHex: "FF" + testKeyHex[2:], KeyBase64: testKeyBase64},
		},
		{
			msg: "videoPath is required",
			req: domain.AssetUpsertReq{VideoPath: " ", KeyHex: testKeyHex, KeyBase64: testKeyBase64},
		},
	}
	for _, tc := range invalid {
		t.Run(tc.msg, func(t *testing.T) {
			repo := new(MockVideoAssetRepo)
			_, err := NewAssetUseCase(repo, time.Second).Upsert(ctx, tc.req)
			assert.True(t, errors.Is(err, errprocess.ErrInvalidArgument))
			assert.Equal(t, tc.msg, errprocess.PublicMessage(err, ""))
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestAssetUseCase_DeleteAndSearch(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	repo := new(MockVideoAssetRepo)
	repo.On("DeleteByPath", mock.Anything, "clips/swing1").Return(false, nil).Once()
	repo.On("Search", mock.Anything, "swing", 50).Return([]domain.VideoAsset{{VideoPath: "clips/swing1"}}, nil).Once()

	uc := NewAssetUseCase(repo, time.Second)
	deleted, err := uc.Delete(ctx, "clips/swing1/")
	require.NoError(t, err)
	assert.False(t, deleted)

	found, err := uc.Search(ctx, "  swing ")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	repo.AssertExpectations(t)
}
