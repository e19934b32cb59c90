package app

import (
	"context"
	"time"

	"video_access_service/internal/playback/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockVideoAssetRepo mock repository.VideoAssetRepo
type MockVideoAssetRepo struct {
	mock.Mock
}

// AutoMigrate mock
func (m *MockVideoAssetRepo) AutoMigrate() error {
	return m.Called().Error(0)
}

// FindByPath mock
func (m *MockVideoAssetRepo) FindByPath(ctx context.Context, path string) (*domain.VideoAsset, error) {
	args := m.Called(ctx, path)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoAsset), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID mock
func (m *MockVideoAssetRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoAsset), args.Error(1)
	}
	return nil, args.Error(1)
}

// Save mock
func (m *MockVideoAssetRepo) Save(ctx context.Context, asset *domain.VideoAsset) error {
	return m.Called(ctx, asset).Error(0)
}

// DeleteByPath mock
func (m *MockVideoAssetRepo) DeleteByPath(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// Search mock
func (m *MockVideoAssetRepo) Search(ctx context.Context, query string, limit int) ([]domain.VideoAsset, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoAsset), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockVideoGroupRepo mock repository.VideoGroupRepo
type MockVideoGroupRepo struct {
	mock.Mock
}

// AutoMigrate mock
func (m *MockVideoGroupRepo) AutoMigrate() error {
	return m.Called().Error(0)
}

// Create mock
func (m *MockVideoGroupRepo) Create(ctx context.Context, g *domain.VideoAssetGroup) (bool, error) {
	args := m.Called(ctx, g)
	return args.Bool(0), args.Error(1)
}

// FindByID mock
func (m *MockVideoGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.VideoAssetGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoAssetGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByIDs mock
func (m *MockVideoGroupRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.VideoAssetGroup, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoAssetGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// AddAsset mock
func (m *MockVideoGroupRepo) AddAsset(ctx context.Context, groupID, assetID uuid.UUID) error {
	return m.Called(ctx, groupID, assetID).Error(0)
}

// RemoveAsset mock
func (m *MockVideoGroupRepo) RemoveAsset(ctx context.Context, groupID, assetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, groupID, assetID)
	return args.Bool(0), args.Error(1)
}

// Delete mock
func (m *MockVideoGroupRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Search mock
func (m *MockVideoGroupRepo) Search(ctx context.Context, query string, limit int) ([]domain.VideoAssetGroup, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoAssetGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAccountTypeRepo mock repository.AccountTypeRepo
type MockAccountTypeRepo struct {
	mock.Mock
}

// AutoMigrate mock
func (m *MockAccountTypeRepo) AutoMigrate() error {
	return m.Called().Error(0)
}

// FindByName mock
func (m *MockAccountTypeRepo) FindByName(ctx context.Context, name string) (*domain.AccountType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.AccountType), args.Error(1)
	}
	return nil, args.Error(1)
}

// Create mock
func (m *MockAccountTypeRepo) Create(ctx context.Context, a *domain.AccountType) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

// Save mock
func (m *MockAccountTypeRepo) Save(ctx context.Context, a *domain.AccountType) error {
	return m.Called(ctx, a).Error(0)
}

// List mock
func (m *MockAccountTypeRepo) List(ctx context.Context) ([]domain.AccountType, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.AccountType), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserAccountTypeRepo mock repository.UserAccountTypeRepo
type MockUserAccountTypeRepo struct {
	mock.Mock
}

// AutoMigrate mock
func (m *MockUserAccountTypeRepo) AutoMigrate() error {
	return m.Called().Error(0)
}

// FindByUserID mock
func (m *MockUserAccountTypeRepo) FindByUserID(ctx context.Context, userID string) (*domain.UserAccountType, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserAccountType), args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateIfAbsent mock
func (m *MockUserAccountTypeRepo) CreateIfAbsent(ctx context.Context, u *domain.UserAccountType) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

// Save mock
func (m *MockUserAccountTypeRepo) Save(ctx context.Context, u *domain.UserAccountType) error {
	return m.Called(ctx, u).Error(0)
}

// MockLicenseRepo mock repository.LicenseRepo
type MockLicenseRepo struct {
	mock.Mock
}

// Migrate mock
func (m *MockLicenseRepo) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Find mock
func (m *MockLicenseRepo) Find(ctx context.Context, userID, videoID string) (*domain.UserVideoLicense, error) {
	args := m.Called(ctx, userID, videoID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserVideoLicense), args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert mock
func (m *MockLicenseRepo) Upsert(ctx context.Context, l *domain.UserVideoLicense) error {
	return m.Called(ctx, l).Error(0)
}

// Delete mock
func (m *MockLicenseRepo) Delete(ctx context.Context, userID, videoID string) (bool, error) {
	args := m.Called(ctx, userID, videoID)
	return args.Bool(0), args.Error(1)
}

// TouchLastValidated mock
func (m *MockLicenseRepo) TouchLastValidated(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// MockAuditRepo mock repository.AuditRepo
type MockAuditRepo struct {
	mock.Mock
}

// AutoMigrate mock
func (m *MockAuditRepo) AutoMigrate() error {
	return m.Called().Error(0)
}

// Create mock
func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AdminAuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

// MockAuditPublisher mock repository.AuditPublisher
type MockAuditPublisher struct {
	mock.Mock
}

// Publish mock
func (m *MockAuditPublisher) Publish(ctx context.Context, entry domain.AdminAuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

// MockSigner mock delivery.DeliverySigner
type MockSigner struct {
	mock.Mock
}

// SignURL mock
func (m *MockSigner) SignURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, ttl)
	return args.String(0), args.Error(1)
}

// SignCookies mock
func (m *MockSigner) SignCookies(ctx context.Context, prefix string, ttl time.Duration) (map[string]string, error) {
	args := m.Called(ctx, prefix, ttl)
	if args.Get(0) != nil {
		return args.Get(0).(map[string]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// Strategy mock
func (m *MockSigner) Strategy() string {
	return m.Called().String(0)
}

// MockEntitlementResolver mock EntitlementResolver
type MockEntitlementResolver struct {
	mock.Mock
}

// TierFor mock
func (m *MockEntitlementResolver) TierFor(ctx context.Context, userID string) (domain.AccountType, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.AccountType), args.Error(1)
}

// Allows mock
func (m *MockEntitlementResolver) Allows(ctx context.Context, accountType domain.AccountType, videoID string) (bool, error) {
	args := m.Called(ctx, accountType, videoID)
	return args.Bool(0), args.Error(1)
}

// MockLicenseUseCase mock LicenseUseCase
type MockLicenseUseCase struct {
	mock.Mock
}

// Check mock
func (m *MockLicenseUseCase) Check(ctx context.Context, userID, videoPath string) (domain.LicenseDecision, error) {
	args := m.Called(ctx, userID, videoPath)
	return args.Get(0).(domain.LicenseDecision), args.Error(1)
}

// EnsureGranted mock
func (m *MockLicenseUseCase) EnsureGranted(ctx context.Context, userID, videoPath string) (string, error) {
	args := m.Called(ctx, userID, videoPath)
	return args.String(0), args.Error(1)
}

// UpsertLicense mock
func (m *MockLicenseUseCase) UpsertLicense(ctx context.Context, req domain.LicenseUpsertReq) (*domain.UserVideoLicense, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserVideoLicense), args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteLicense mock
func (m *MockLicenseUseCase) DeleteLicense(ctx context.Context, userID, videoPath string) (bool, error) {
	args := m.Called(ctx, userID, videoPath)
	return args.Bool(0), args.Error(1)
}

// MockAssetUseCase mock AssetUseCase
type MockAssetUseCase struct {
	mock.Mock
}

// ResolveKey mock
func (m *MockAssetUseCase) ResolveKey(ctx context.Context, videoPath string) ([]byte, error) {
	args := m.Called(ctx, videoPath)
	if args.Get(0) != nil {
		return args.Get(0).([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert mock
func (m *MockAssetUseCase) Upsert(ctx context.Context, req domain.AssetUpsertReq) (*domain.VideoAsset, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoAsset), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete mock
func (m *MockAssetUseCase) Delete(ctx context.Context, videoPath string) (bool, error) {
	args := m.Called(ctx, videoPath)
	return args.Bool(0), args.Error(1)
}

// Search mock
func (m *MockAssetUseCase) Search(ctx context.Context, query string) ([]domain.VideoAsset, error) {
	args := m.Called(ctx, query)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoAsset), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPlaybackUseCase mock PlaybackUseCase
type MockPlaybackUseCase struct {
	mock.Mock
}

// Issue mock
func (m *MockPlaybackUseCase) Issue(ctx context.Context, userID, videoPath string, codec domain.VideoCodec, ttl time.Duration) (*domain.CredentialBundle, error) {
	args := m.Called(ctx, userID, videoPath, codec, ttl)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.CredentialBundle), args.Error(1)
	}
	return nil, args.Error(1)
}

// LicenseKey mock
func (m *MockPlaybackUseCase) LicenseKey(ctx context.Context, userID, videoPath string) ([]byte, error) {
	args := m.Called(ctx, userID, videoPath)
	if args.Get(0) != nil {
		return args.Get(0).([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAccountUseCase mock AccountUseCase
type MockAccountUseCase struct {
	mock.Mock
}

// CreateAccountType mock
func (m *MockAccountUseCase) CreateAccountType(ctx context.Context, name string) (domain.AccountTypeView, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.AccountTypeView), args.Error(1)
}

// AddGroupToAccountType mock
func (m *MockAccountUseCase) AddGroupToAccountType(ctx context.Context, name string, groupID uuid.UUID) (domain.AccountTypeView, error) {
	args := m.Called(ctx, name, groupID)
	return args.Get(0).(domain.AccountTypeView), args.Error(1)
}

// RemoveGroupFromAccountType mock
func (m *MockAccountUseCase) RemoveGroupFromAccountType(ctx context.Context, name string, groupID uuid.UUID) (domain.AccountTypeView, error) {
	args := m.Called(ctx, name, groupID)
	return args.Get(0).(domain.AccountTypeView), args.Error(1)
}

// ListAccountTypes mock
func (m *MockAccountUseCase) ListAccountTypes(ctx context.Context) ([]domain.AccountTypeView, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.AccountTypeView), args.Error(1)
	}
	return nil, args.Error(1)
}

// SetUserAccountType mock
func (m *MockAccountUseCase) SetUserAccountType(ctx context.Context, userID, accountType string) (*domain.UserAccountType, error) {
	args := m.Called(ctx, userID, accountType)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserAccountType), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetUserAccountType mock
func (m *MockAccountUseCase) GetUserAccountType(ctx context.Context, userID string) (*domain.UserAccountType, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserAccountType), args.Error(1)
	}
	return nil, args.Error(1)
}

// SeedDefaults mock
func (m *MockAccountUseCase) SeedDefaults(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockGroupUseCase mock GroupUseCase
type MockGroupUseCase struct {
	mock.Mock
}

// CreateGroup mock
func (m *MockGroupUseCase) CreateGroup(ctx context.Context, name string) (*domain.VideoAssetGroup, error) {
	args := m.Called(ctx, name)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoAssetGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// AddAsset mock
func (m *MockGroupUseCase) AddAsset(ctx context.Context, groupID, assetID uuid.UUID) (*domain.VideoAssetGroup, error) {
	args := m.Called(ctx, groupID, assetID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoAssetGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// RemoveAsset mock
func (m *MockGroupUseCase) RemoveAsset(ctx context.Context, groupID, assetID uuid.UUID) (*domain.VideoAssetGroup, error) {
	args := m.Called(ctx, groupID, assetID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.VideoAssetGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteGroup mock
func (m *MockGroupUseCase) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	return m.Called(ctx, groupID).Error(0)
}

// SearchGroups mock
func (m *MockGroupUseCase) SearchGroups(ctx context.Context, query string) ([]domain.VideoAssetGroup, error) {
	args := m.Called(ctx, query)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.VideoAssetGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuditUseCase mock AuditUseCase
type MockAuditUseCase struct {
	mock.Mock
}

// Record mock
func (m *MockAuditUseCase) Record(ctx context.Context, adminUID, action, details string) error {
	return m.Called(ctx, adminUID, action, details).Error(0)
}
