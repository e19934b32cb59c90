package app

import (
	"context"
	"strings"
	"time"

	"video_access_service/internal/playback/domain"
	"video_access_service/internal/playback/repository"
	"video_access_service/pkg/logger"
	"video_access_service/pkg/metrics"

	"go.uber.org/zap"
)

// AuditUseCase admin audit trail
type AuditUseCase interface {
	// Record blank adminUID or action is skipped. Broker failures never fail the caller.
	Record(ctx context.Context, adminUID, action, details string) error
}

type auditUseCase struct {
	repo      repository.AuditRepo
	publisher repository.AuditPublisher
	timeout   time.Duration
}

// NewAuditUseCase create AuditUseCase
func NewAuditUseCase(repo repository.AuditRepo, publisher repository.AuditPublisher, timeout time.Duration) AuditUseCase {
	return &auditUseCase{repo: repo, publisher: publisher, timeout: timeout}
}

func (a *auditUseCase) Record(ctx context.Context, adminUID, action, details string) error {
	if strings.TrimSpace(adminUID) == "" || strings.TrimSpace(action) == "" {
		return nil
	}
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	entry := domain.AdminAuditLog{
		AdminUID:  adminUID,
		Action:    action,
		Details:   details,
		CreatedAt: now(),
	}
	if err := a.repo.Create(ctx, &entry); err != nil {
		logger.Log.Error("audit persist failed", zap.String("action", action), zap.Error(err))
		return err
	}
	if err := a.publisher.Publish(ctx, entry); err != nil {
		metrics.ObserveAuditPublishFailure()
		logger.Log.Warn("audit publish failed", zap.String("action", action), zap.Uint("id", entry.ID), zap.Error(err))
	}
	return nil
}
