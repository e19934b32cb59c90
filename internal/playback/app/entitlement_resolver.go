package app

import (
	"context"
	"fmt"

	"video_access_service/internal/playback/domain"
	"video_access_service/internal/playback/repository"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"go.uber.org/zap"
)

// maxSeedAttempts bound on the read, insert, re-read loop of TierFor
const maxSeedAttempts = 3

// EntitlementResolver decides what a tier may play
type EntitlementResolver interface {
	// TierFor the user's tier, assigning the default tier on first access
	TierFor(ctx context.Context, userID string) (domain.AccountType, error)
	// Allows videoID must be normalized
	Allows(ctx context.Context, accountType domain.AccountType, videoID string) (bool, error)
}

type entitlementResolver struct {
	assets       repository.VideoAssetRepo
	groups       repository.VideoGroupRepo
	accountTypes repository.AccountTypeRepo
	userTypes    repository.UserAccountTypeRepo
	fallbacks    []string
}

// NewEntitlementResolver fallbacks are tried in order when a user has no tier
func NewEntitlementResolver(
	assets repository.VideoAssetRepo,
	groups repository.VideoGroupRepo,
	accountTypes repository.AccountTypeRepo,
	userTypes repository.UserAccountTypeRepo,
	fallbacks []string,
) EntitlementResolver {
	return &entitlementResolver{
		assets:       assets,
		groups:       groups,
		accountTypes: accountTypes,
		userTypes:    userTypes,
		fallbacks:    fallbacks,
	}
}

func (r *entitlementResolver) Allows(ctx context.Context, accountType domain.AccountType, videoID string) (bool, error) {
	e := accountType.Entitlement
	if e.IsUnrestricted() {
		return true, nil
	}
	groupIDs := e.GroupIDs()
	if len(groupIDs) == 0 {
		return false, nil
	}

	asset, err := r.assets.FindByPath(ctx, videoID)
	if err != nil {
		return false, err
	}
	if asset == nil {
		return false, nil
	}

	groups, err := r.groups.FindByIDs(ctx, groupIDs)
	if err != nil {
		return false, err
	}
	for _, g := range groups {
		if g.HasAsset(asset.ID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *entitlementResolver) TierFor(ctx context.Context, userID string) (domain.AccountType, error) {
	for attempt := 1; attempt <= maxSeedAttempts; attempt++ {
		assigned, err := r.userTypes.FindByUserID(ctx, userID)
		if err != nil {
			return domain.AccountType{}, err
		}
		if assigned != nil {
			return r.loadTier(ctx, assigned.AccountType)
		}

		tier, err := r.defaultTier(ctx)
		if err != nil {
			return domain.AccountType{}, err
		}
		stamp := now()
		inserted, err := r.userTypes.CreateIfAbsent(ctx, &domain.UserAccountType{
			UserID:      userID,
			AccountType: tier.Name,
			CreatedAt:   stamp,
			UpdatedAt:   stamp,
		})
		if err != nil {
			return domain.AccountType{}, err
		}
		if inserted {
			logger.Log.Info("assigned default account type", zap.String("userId", userID), zap.String("accountType", tier.Name))
			return *tier, nil
		}
		// lost the race to a concurrent first access, read the winner's row
		logger.Log.Debug("account type seed raced", zap.String("userId", userID), zap.Int("attempt", attempt))
	}
	return domain.AccountType{}, errprocess.New(errprocess.ErrConflict,
		fmt.Sprintf("could not resolve account type for user %s after %d attempts", userID, maxSeedAttempts))
}

// loadTier a dangling assignment grants nothing rather than failing playback
func (r *entitlementResolver) loadTier(ctx context.Context, name string) (domain.AccountType, error) {
	tier, err := r.accountTypes.FindByName(ctx, name)
	if err != nil {
		return domain.AccountType{}, err
	}
	if tier == nil {
		logger.Log.Warn("user assigned to unknown account type", zap.String("accountType", name))
		return domain.AccountType{Name: name, Entitlement: domain.RestrictedTo()}, nil
	}
	return *tier, nil
}

func (r *entitlementResolver) defaultTier(ctx context.Context) (*domain.AccountType, error) {
	for _, name := range r.fallbacks {
		tier, err := r.accountTypes.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if tier != nil {
			return tier, nil
		}
	}
	return nil, errprocess.New(errprocess.ErrConfiguration, "Default account types not seeded")
}

