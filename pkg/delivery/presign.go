package delivery

import (
	"context"
	"strings"
	"time"

	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"go.uber.org/zap"
)

// Presigner object storage presigned GET, satisfied by *database.MinIOClient
type Presigner interface {
	PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// PresignSigner serves objects straight from the bucket, there is no cookie form
type PresignSigner struct {
	storage Presigner
}

// NewPresignSigner storage is required
func NewPresignSigner(storage Presigner) (*PresignSigner, error) {
	if storage == nil {
		return nil, errprocess.New(errprocess.ErrConfiguration, "object storage is not configured for s3 delivery")
	}
	return &PresignSigner{storage: storage}, nil
}

// Strategy name of this signer
func (s *PresignSigner) Strategy() string {
	return "s3"
}

// SignURL presigned GET for objectKey
func (s *PresignSigner) SignURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	if err := validate(objectKey, ttl); err != nil {
		return "", err
	}
	u, err := s.storage.PresignGetURL(ctx, strings.TrimPrefix(strings.TrimSpace(objectKey), "/"), ttl)
	if err != nil {
		logger.Log.Error("presign object URL failed", zap.String("object", objectKey), zap.Error(err))
		return "", err
	}
	return u, nil
}

// SignCookies always nil, input is still validated
func (s *PresignSigner) SignCookies(_ context.Context, prefix string, ttl time.Duration) (map[string]string, error) {
	if err := validate(prefix, ttl); err != nil {
		return nil, err
	}
	return nil, nil
}
