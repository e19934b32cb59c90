package app

import (
	"context"
	"time"

	"video_access_service/internal/playback/domain"
	"video_access_service/pkg/delivery"
	"video_access_service/pkg/logger"
	"video_access_service/pkg/metrics"

	"go.uber.org/zap"
)

// PlaybackUseCase issues signed access to licensed videos
type PlaybackUseCase interface {
	// Issue ttl <= 0 uses the configured default
	Issue(ctx context.Context, userID, videoPath string, codec domain.VideoCodec, ttl time.Duration) (*domain.CredentialBundle, error)
	// LicenseKey content key of a video the user may play
	LicenseKey(ctx context.Context, userID, videoPath string) ([]byte, error)
}

type playbackUseCase struct {
	licenses   LicenseUseCase
	assets     AssetUseCase
	signer     delivery.DeliverySigner
	defaultTTL time.Duration
}

// NewPlaybackUseCase create PlaybackUseCase
func NewPlaybackUseCase(licenses LicenseUseCase, assets AssetUseCase, signer delivery.DeliverySigner, defaultTTL time.Duration) PlaybackUseCase {
	return &playbackUseCase{
		licenses:   licenses,
		assets:     assets,
		signer:     signer,
		defaultTTL: defaultTTL,
	}
}

func (p *playbackUseCase) Issue(ctx context.Context, userID, videoPath string, codec domain.VideoCodec, ttl time.Duration) (*domain.CredentialBundle, error) {
	videoID, err := p.licenses.EnsureGranted(ctx, userID, videoPath)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = p.defaultTTL
	}
	if ttl < time.Second {
		ttl = time.Second
	}

	keys := domain.BuildStorageKeys(videoID, codec)
	videoURL, err := p.signer.SignURL(ctx, keys.Video, ttl)
	if err != nil {
		return nil, err
	}
	metadataURL, err := p.signer.SignURL(ctx, keys.Metadata, ttl)
	if err != nil {
		return nil, err
	}
	cookies, err := p.signer.SignCookies(ctx, keys.Prefix, ttl)
	if err != nil {
		return nil, err
	}

	metrics.ObserveIssued(p.signer.Strategy())
	logger.Log.Info("issued playback credentials",
		zap.String("userId", userID),
		zap.String("videoPath", videoID),
		zap.String("codec", string(codec)),
		zap.String("videoKey", keys.Video),
		zap.Duration("ttl", ttl),
	)
	return &domain.CredentialBundle{
		VideoURL:         videoURL,
		MetadataURL:      metadataURL,
		Codec:            codec,
		ExpiresInSeconds: int64(ttl / time.Second),
		SignedCookies:    cookies,
	}, nil
}

func (p *playbackUseCase) LicenseKey(ctx context.Context, userID, videoPath string) ([]byte, error) {
	videoID, err := p.licenses.EnsureGranted(ctx, userID, videoPath)
	if err != nil {
		return nil, err
	}
	return p.assets.ResolveKey(ctx, videoID)
}
