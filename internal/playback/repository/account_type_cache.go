package repository

import (
	"context"
	"errors"
	"time"

	"video_access_service/internal/playback/domain"
	"video_access_service/pkg/database"
	"video_access_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountTypeCacheEntry cached form of an AccountType
type AccountTypeCacheEntry struct {
	Name         string      `json:"name"`
	Unrestricted bool        `json:"unrestricted"`
	GroupIDs     []uuid.UUID `json:"groupIds"`
}

// AccountTypeCachePrefix redis key prefix of cached tiers
const AccountTypeCachePrefix = "playback:account_type:"

type cachedAccountTypeRepo struct {
	AccountTypeRepo
	cache database.RedisRepository[AccountTypeCacheEntry]
	ttl   time.Duration
}

// NewCachedAccountTypeRepo read-through cache in front of inner.
// Writes go to inner first and then drop the cached entry.
func NewCachedAccountTypeRepo(inner AccountTypeRepo, cache database.RedisRepository[AccountTypeCacheEntry], ttl time.Duration) AccountTypeRepo {
	return &cachedAccountTypeRepo{AccountTypeRepo: inner, cache: cache, ttl: ttl}
}

func (r *cachedAccountTypeRepo) FindByName(ctx context.Context, name string) (*domain.AccountType, error) {
	entry, err := r.cache.Get(ctx, name)
	if err == nil {
		a := entry.toDomain()
		return &a, nil
	}
	if !errors.Is(err, database.ErrCacheMiss) {
		logger.Log.Warn("account type cache read failed", zap.String("name", name), zap.Error(err))
	}

	a, err := r.AccountTypeRepo.FindByName(ctx, name)
	if err != nil || a == nil {
		return a, err
	}
	if err := r.cache.Set(ctx, name, newCacheEntry(*a), r.ttl); err != nil {
		logger.Log.Warn("account type cache write failed", zap.String("name", name), zap.Error(err))
	}
	return a, nil
}

func (r *cachedAccountTypeRepo) Create(ctx context.Context, a *domain.AccountType) (bool, error) {
	created, err := r.AccountTypeRepo.Create(ctx, a)
	r.evict(ctx, a.Name)
	return created, err
}

func (r *cachedAccountTypeRepo) Save(ctx context.Context, a *domain.AccountType) error {
	err := r.AccountTypeRepo.Save(ctx, a)
	r.evict(ctx, a.Name)
	return err
}

func (r *cachedAccountTypeRepo) evict(ctx context.Context, name string) {
	if err := r.cache.Del(ctx, name); err != nil {
		logger.Log.Warn("account type cache evict failed", zap.String("name", name), zap.Error(err))
	}
}

func newCacheEntry(a domain.AccountType) AccountTypeCacheEntry {
	return AccountTypeCacheEntry{
		Name:         a.Name,
		Unrestricted: a.Entitlement.IsUnrestricted(),
		GroupIDs:     a.Entitlement.GroupIDs(),
	}
}

func (e AccountTypeCacheEntry) toDomain() domain.AccountType {
	if e.Unrestricted {
		return domain.AccountType{Name: e.Name, Entitlement: domain.Unrestricted()}
	}
	return domain.AccountType{Name: e.Name, Entitlement: domain.RestrictedTo(e.GroupIDs...)}
}
