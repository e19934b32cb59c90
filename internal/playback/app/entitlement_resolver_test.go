package app

import (
	"context"
	"errors"
	"testing"

	"video_access_service/internal/playback/domain"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type resolverMocks struct {
	assets       *MockVideoAssetRepo
	groups       *MockVideoGroupRepo
	accountTypes *MockAccountTypeRepo
	userTypes    *MockUserAccountTypeRepo
}

func newResolverMocks() resolverMocks {
	return resolverMocks{
		assets:       new(MockVideoAssetRepo),
		groups:       new(MockVideoGroupRepo),
		accountTypes: new(MockAccountTypeRepo),
		userTypes:    new(MockUserAccountTypeRepo),
	}
}

func (m resolverMocks) resolver(fallbacks ...string) EntitlementResolver {
	return NewEntitlementResolver(m.assets, m.groups, m.accountTypes, m.userTypes, fallbacks)
}

func TestEntitlementResolver_Allows(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	assetID := uuid.New()
	g1, g2 := uuid.New(), uuid.New()

	t.Run("unrestricted grants without lookups", func(t *testing.T) {
		m := newResolverMocks()
		ok, err := m.resolver().Allows(ctx, domain.AccountType{Name: "tier_9", Entitlement: domain.Unrestricted()}, "any/video")
		require.NoError(t, err)
		assert.True(t, ok)
		m.assets.AssertNotCalled(t, "FindByPath", mock.Anything, mock.Anything)
	})

	t.Run("empty restriction denies without lookups", func(t *testing.T) {
		m := newResolverMocks()
		ok, err := m.resolver().Allows(ctx, domain.AccountType{Name: "tier_0", Entitlement: domain.RestrictedTo()}, "any/video")
		require.NoError(t, err)
		assert.False(t, ok)
		m.assets.AssertNotCalled(t, "FindByPath", mock.Anything, mock.Anything)
	})

	t.Run("unregistered video denies", func(t *testing.T) {
		m := newResolverMocks()
		m.assets.On("FindByPath", ctx, "clips/x").Return(nil, nil).Once()

		ok, err := m.resolver().Allows(ctx, domain.AccountType{Entitlement: domain.RestrictedTo(g1)}, "clips/x")
		require.NoError(t, err)
		assert.False(t, ok)
		m.groups.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("any granted group containing the asset allows", func(t *testing.T) {
		m := newResolverMocks()
		m.assets.On("FindByPath", ctx, "clips/swing1").Return(&domain.VideoAsset{ID: assetID}, nil).Once()
		m.groups.On("FindByIDs", ctx, mock.Anything).Return([]domain.VideoAssetGroup{
			{ID: g1, Name: "empty"},
			{ID: g2, Name: "lessons", VideoAssetIDs: []uuid.UUID{uuid.New(), assetID}},
		}, nil).Once()

		ok, err := m.resolver().Allows(ctx, domain.AccountType{Entitlement: domain.RestrictedTo(g1, g2)}, "clips/swing1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("groups without the asset deny", func(t *testing.T) {
		m := newResolverMocks()
		m.assets.On("FindByPath", ctx, "clips/swing1").Return(&domain.VideoAsset{ID: assetID}, nil).Once()
		m.groups.On("FindByIDs", ctx, []uuid.UUID{g1}).Return([]domain.VideoAssetGroup{
			{ID: g1, VideoAssetIDs: []uuid.UUID{uuid.New()}},
		}, nil).Once()

		ok, err := m.resolver().Allows(ctx, domain.AccountType{Entitlement: domain.RestrictedTo(g1)}, "clips/swing1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		m := newResolverMocks()
		m.assets.On("FindByPath", ctx, "clips/swing1").Return(nil, errors.New("db down")).Once()

		_, err := m.resolver().Allows(ctx, domain.AccountType{Entitlement: domain.RestrictedTo(g1)}, "clips/swing1")
		assert.Error(t, err)
	})
}

func TestEntitlementResolver_TierFor(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	tier0 := &domain.AccountType{Name: "tier_0", Entitlement: domain.RestrictedTo()}
	gold := &domain.AccountType{Name: "gold", Entitlement: domain.Unrestricted()}

	t.Run("assigned user loads the tier", func(t *testing.T) {
		m := newResolverMocks()
		m.userTypes.On("FindByUserID", ctx, "u1").Return(&domain.UserAccountType{UserID: "u1", AccountType: "gold"}, nil).Once()
		m.accountTypes.On("FindByName", ctx, "gold").Return(gold, nil).Once()

		tier, err := m.resolver("tier_0").TierFor(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "gold", tier.Name)
		assert.True(t, tier.Entitlement.IsUnrestricted())
	})

	t.Run("dangling assignment grants nothing", func(t *testing.T) {
		m := newResolverMocks()
		m.userTypes.On("FindByUserID", ctx, "u1").Return(&domain.UserAccountType{UserID: "u1", AccountType: "gone"}, nil).Once()
		m.accountTypes.On("FindByName", ctx, "gone").Return(nil, nil).Once()

		tier, err := m.resolver("tier_0").TierFor(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, tier.Entitlement.IsUnrestricted())
		assert.Empty(t, tier.Entitlement.GroupIDs())
	})

	t.Run("first access falls back to tier_0 when the default is missing", func(t *testing.T) {
		m := newResolverMocks()
		m.userTypes.On("FindByUserID", ctx, "new").Return(nil, nil).Once()
		m.accountTypes.On("FindByName", ctx, "basic").Return(nil, nil).Once()
		m.accountTypes.On("FindByName", ctx, "tier_0").Return(tier0, nil).Once()
		m.userTypes.On("CreateIfAbsent", ctx, mock.MatchedBy(func(u *domain.UserAccountType) bool {
			return u.UserID == "new" && u.AccountType == "tier_0"
		})).Return(true, nil).Once()

		tier, err := m.resolver("basic", "tier_0").TierFor(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "tier_0", tier.Name)
		m.userTypes.AssertExpectations(t)
		m.accountTypes.AssertExpectations(t)
	})

	t.Run("losing the insert race reads the winner", func(t *testing.T) {
		m := newResolverMocks()
		m.userTypes.On("FindByUserID", ctx, "new").Return(nil, nil).Once()
		m.accountTypes.On("FindByName", ctx, "tier_0").Return(tier0, nil).Once()
		m.userTypes.On("CreateIfAbsent", ctx, mock.Anything).Return(false, nil).Once()
		m.userTypes.On("FindByUserID", ctx, "new").Return(&domain.UserAccountType{UserID: "new", AccountType: "gold"}, nil).Once()
		m.accountTypes.On("FindByName", ctx, "gold").Return(gold, nil).Once()

		tier, err := m.resolver("tier_0").TierFor(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "gold", tier.Name)
		m.userTypes.AssertExpectations(t)
	})

	t.Run("nothing seeded is a configuration error", func(t *testing.T) {
		m := newResolverMocks()
		m.userTypes.On("FindByUserID", ctx, "new").Return(nil, nil).Once()
		m.accountTypes.On("FindByName", ctx, "tier_0").Return(nil, nil).Once()

		_, err := m.resolver("tier_0").TierFor(ctx, "new")
		assert.True(t, errors.Is(err, errprocess.ErrConfiguration))
		m.userTypes.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	})

	t.Run("bounded retries", func(t *testing.T) {
		m := newResolverMocks()
		m.userTypes.On("FindByUserID", ctx, "new").Return(nil, nil).Times(maxSeedAttempts)
		m.accountTypes.On("FindByName", ctx, "tier_0").Return(tier0, nil).Times(maxSeedAttempts)
		m.userTypes.On("CreateIfAbsent", ctx, mock.Anything).Return(false, nil).Times(maxSeedAttempts)

		_, err := m.resolver("tier_0").TierFor(ctx, "new")
		assert.True(t, errors.Is(err, errprocess.ErrConflict))
		m.userTypes.AssertExpectations(t)
	})
}
