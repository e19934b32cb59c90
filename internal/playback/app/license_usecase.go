package app

import (
	"context"
	"strings"
	"time"

	"video_access_service/internal/playback/domain"
	"video_access_service/internal/playback/repository"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"
	"video_access_service/pkg/metrics"

	"go.uber.org/zap"
)

// LicenseUseCase per user playback decisions and the license admin surface
type LicenseUseCase interface {
	Check(ctx context.Context, userID, videoPath string) (domain.LicenseDecision, error)
	// EnsureGranted normalized video id, or *domain.AccessDeniedError
	EnsureGranted(ctx context.Context, userID, videoPath string) (string, error)
	UpsertLicense(ctx context.Context, req domain.LicenseUpsertReq) (*domain.UserVideoLicense, error)
	DeleteLicense(ctx context.Context, userID, videoPath string) (bool, error)
}

type licenseUseCase struct {
	licenses repository.LicenseRepo
	resolver EntitlementResolver
	timeout  time.Duration
}

// NewLicenseUseCase create LicenseUseCase
func NewLicenseUseCase(licenses repository.LicenseRepo, resolver EntitlementResolver, timeout time.Duration) LicenseUseCase {
	return &licenseUseCase{licenses: licenses, resolver: resolver, timeout: timeout}
}

// Check an explicit license always wins over the tier, whatever its state
func (l *licenseUseCase) Check(ctx context.Context, userID, videoPath string) (domain.LicenseDecision, error) {
	videoID, err := domain.NormalizeVideoPath(videoPath)
	if err != nil {
		return domain.LicenseDecision{}, err
	}
	ctx, cancel := boundCtx(ctx, l.timeout)
	defer cancel()

	checkedAt := now()
	lic, err := l.licenses.Find(ctx, userID, videoID)
	if err != nil {
		return domain.LicenseDecision{}, err
	}

	var d domain.LicenseDecision
	if lic != nil {
		d, err = l.decideExplicit(ctx, lic, checkedAt)
	} else {
		d, err = l.decideByTier(ctx, userID, videoID, checkedAt)
	}
	if err != nil {
		return domain.LicenseDecision{}, err
	}

	reason := ""
	if d.DenialReason != nil {
		reason = string(*d.DenialReason)
	}
	metrics.ObserveDecision(d.Granted, reason)
	logger.Log.Debug("license decision",
		zap.String("userId", userID),
		zap.String("videoId", videoID),
		zap.Bool("granted", d.Granted),
		zap.String("reason", reason),
	)
	return d, nil
}

func (l *licenseUseCase) decideExplicit(ctx context.Context, lic *domain.UserVideoLicense, checkedAt time.Time) (domain.LicenseDecision, error) {
	status := lic.Status
	d := domain.LicenseDecision{
		VideoID:   lic.VideoID,
		Status:    &status,
		ExpiresAt: lic.ExpiresAt,
		CheckedAt: checkedAt,
	}

	switch lic.Status {
	case domain.LicenseActive:
		if lic.ExpiresAt != nil && !lic.ExpiresAt.After(checkedAt) {
			return deny(d, domain.DenialExpired), nil
		}
		d.Granted = true
		if err := l.licenses.TouchLastValidated(ctx, lic.ID, checkedAt); err != nil {
			logger.Log.Warn("license last validated update failed", zap.String("licenseId", lic.ID.String()), zap.Error(err))
		}
		return d, nil
	case domain.LicenseSuspended:
		return deny(d, domain.DenialSuspended), nil
	case domain.LicenseRevoked:
		return deny(d, domain.DenialRevoked), nil
	}
	return domain.LicenseDecision{}, errprocess.New(errprocess.ErrIntegrity, "unknown license status "+string(lic.Status))
}

func (l *licenseUseCase) decideByTier(ctx context.Context, userID, videoID string, checkedAt time.Time) (domain.LicenseDecision, error) {
	d := domain.LicenseDecision{VideoID: videoID, CheckedAt: checkedAt}

	tier, err := l.resolver.TierFor(ctx, userID)
	if err != nil {
		return d, err
	}
	allowed, err := l.resolver.Allows(ctx, tier, videoID)
	if err != nil {
		return d, err
	}
	if !allowed {
		return deny(d, domain.DenialNotFound), nil
	}
	active := domain.LicenseActive
	d.Granted = true
	d.Status = &active
	return d, nil
}

func deny(d domain.LicenseDecision, reason domain.DenialReason) domain.LicenseDecision {
	d.Granted = false
	d.DenialReason = &reason
	return d
}

func (l *licenseUseCase) EnsureGranted(ctx context.Context, userID, videoPath string) (string, error) {
	d, err := l.Check(ctx, userID, videoPath)
	if err != nil {
		return "", err
	}
	if !d.Granted {
		return "", &domain.AccessDeniedError{VideoID: d.VideoID, Reason: *d.DenialReason}
	}
	return d.VideoID, nil
}

// UpsertLicense an omitted status keeps the stored one, expiresAt is always replaced
func (l *licenseUseCase) UpsertLicense(ctx context.Context, req domain.LicenseUpsertReq) (*domain.UserVideoLicense, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, errprocess.Invalid("userId is required")
	}
	videoID, err := domain.NormalizeVideoPath(req.VideoPath)
	if err != nil {
		return nil, err
	}
	var status *domain.LicenseStatus
	if req.Status != nil {
		s, err := domain.ParseLicenseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		status = &s
	}

	ctx, cancel := boundCtx(ctx, l.timeout)
	defer cancel()

	lic, err := l.licenses.Find(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}
	if lic == nil {
		lic = &domain.UserVideoLicense{UserID: userID, VideoID: videoID, Status: domain.LicenseActive}
	}
	if status != nil {
		lic.Status = *status
	}
	lic.ExpiresAt = req.ExpiresAt

	if err := l.licenses.Upsert(ctx, lic); err != nil {
		return nil, err
	}
	return lic, nil
}

func (l *licenseUseCase) DeleteLicense(ctx context.Context, userID, videoPath string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, errprocess.Invalid("userId is required")
	}
	videoID, err := domain.NormalizeVideoPath(videoPath)
	if err != nil {
		return false, err
	}
	ctx, cancel := boundCtx(ctx, l.timeout)
	defer cancel()
	return l.licenses.Delete(ctx, userID, videoID)
}
