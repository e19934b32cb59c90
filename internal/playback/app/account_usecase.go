package app

import (
	"context"
	"strings"
	"time"

	"video_access_service/internal/playback/domain"
	"video_access_service/internal/playback/repository"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountUseCase tier and user tier admin
type AccountUseCase interface {
	CreateAccountType(ctx context.Context, name string) (domain.AccountTypeView, error)
	AddGroupToAccountType(ctx context.Context, name string, groupID uuid.UUID) (domain.AccountTypeView, error)
	RemoveGroupFromAccountType(ctx context.Context, name string, groupID uuid.UUID) (domain.AccountTypeView, error)
	ListAccountTypes(ctx context.Context) ([]domain.AccountTypeView, error)
	SetUserAccountType(ctx context.Context, userID, accountType string) (*domain.UserAccountType, error)
	GetUserAccountType(ctx context.Context, userID string) (*domain.UserAccountType, error)
	// SeedDefaults create the fallback tier when missing, safe to run on every start
	SeedDefaults(ctx context.Context) error
}

type accountUseCase struct {
	accountTypes repository.AccountTypeRepo
	groups       repository.VideoGroupRepo
	userTypes    repository.UserAccountTypeRepo
	seedTier     string
	timeout      time.Duration
}

// NewAccountUseCase create AccountUseCase
func NewAccountUseCase(
	accountTypes repository.AccountTypeRepo,
	groups repository.VideoGroupRepo,
	userTypes repository.UserAccountTypeRepo,
	seedTier string,
	timeout time.Duration,
) AccountUseCase {
	return &accountUseCase{
		accountTypes: accountTypes,
		groups:       groups,
		userTypes:    userTypes,
		seedTier:     seedTier,
		timeout:      timeout,
	}
}

func (a *accountUseCase) CreateAccountType(ctx context.Context, name string) (domain.AccountTypeView, error) {
	n, err := accountTypeName(name)
	if err != nil {
		return domain.AccountTypeView{}, err
	}
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	tier := domain.AccountType{Name: n, Entitlement: domain.RestrictedTo()}
	created, err := a.accountTypes.Create(ctx, &tier)
	if err != nil {
		return domain.AccountTypeView{}, err
	}
	if !created {
		return domain.AccountTypeView{}, errprocess.Conflict("Account type already exists: %s", n)
	}
	return tier.View(), nil
}

func (a *accountUseCase) AddGroupToAccountType(ctx context.Context, name string, groupID uuid.UUID) (domain.AccountTypeView, error) {
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	tier, err := a.findAccountType(ctx, name)
	if err != nil {
		return domain.AccountTypeView{}, err
	}
	group, err := a.groups.FindByID(ctx, groupID)
	if err != nil {
		return domain.AccountTypeView{}, err
	}
	if group == nil {
		return domain.AccountTypeView{}, errprocess.NotFound("Video asset group not found: %s", groupID)
	}
	if err := ensureScopable(tier); err != nil {
		return domain.AccountTypeView{}, err
	}

	next, changed := tier.Entitlement.With(groupID)
	if !changed {
		return tier.View(), nil
	}
	tier.Entitlement = next
	if err := a.accountTypes.Save(ctx, tier); err != nil {
		return domain.AccountTypeView{}, err
	}
	return tier.View(), nil
}

func (a *accountUseCase) RemoveGroupFromAccountType(ctx context.Context, name string, groupID uuid.UUID) (domain.AccountTypeView, error) {
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	tier, err := a.findAccountType(ctx, name)
	if err != nil {
		return domain.AccountTypeView{}, err
	}
	if err := ensureScopable(tier); err != nil {
		return domain.AccountTypeView{}, err
	}

	next, changed := tier.Entitlement.Without(groupID)
	if !changed {
		return domain.AccountTypeView{}, errprocess.NotFound("Video group %s not assigned to account type %s", groupID, tier.Name)
	}
	tier.Entitlement = next
	if err := a.accountTypes.Save(ctx, tier); err != nil {
		return domain.AccountTypeView{}, err
	}
	return tier.View(), nil
}

func (a *accountUseCase) ListAccountTypes(ctx context.Context) ([]domain.AccountTypeView, error) {
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	tiers, err := a.accountTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.AccountTypeView, 0, len(tiers))
	for _, t := range tiers {
		views = append(views, t.View())
	}
	return views, nil
}

func (a *accountUseCase) SetUserAccountType(ctx context.Context, userID, accountType string) (*domain.UserAccountType, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errprocess.Invalid("userId is required")
	}
	if strings.TrimSpace(accountType) == "" {
		return nil, errprocess.Invalid("accountType is required")
	}
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	tier, err := a.findAccountType(ctx, accountType)
	if err != nil {
		return nil, err
	}
	stamp := now()
	assignment := &domain.UserAccountType{
		UserID:      userID,
		AccountType: tier.Name,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
	if err := a.userTypes.Save(ctx, assignment); err != nil {
		return nil, err
	}
	logger.Log.Info("user account type set", zap.String("userId", userID), zap.String("accountType", tier.Name))
	return assignment, nil
}

func (a *accountUseCase) GetUserAccountType(ctx context.Context, userID string) (*domain.UserAccountType, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errprocess.Invalid("userId is required")
	}
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	assignment, err := a.userTypes.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, errprocess.NotFound("No account type assignment for userId: %s", userID)
	}
	return assignment, nil
}

func (a *accountUseCase) SeedDefaults(ctx context.Context) error {
	ctx, cancel := boundCtx(ctx, a.timeout)
	defer cancel()

	created, err := a.accountTypes.Create(ctx, &domain.AccountType{Name: a.seedTier, Entitlement: domain.RestrictedTo()})
	if err != nil {
		return errprocess.Wrap(errprocess.ErrConfiguration, "seed default account type failed", err)
	}
	if created {
		logger.Log.Info("seeded default account type", zap.String("accountType", a.seedTier))
	}
	return nil
}

func (a *accountUseCase) findAccountType(ctx context.Context, raw string) (*domain.AccountType, error) {
	name, err := accountTypeName(raw)
	if err != nil {
		return nil, err
	}
	tier, err := a.accountTypes.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, errprocess.NotFound("Account type not found: %s", name)
	}
	return tier, nil
}

func accountTypeName(raw string) (string, error) {
	name := domain.NormalizeName(raw)
	if name == "" {
		return "", errprocess.Invalid("Account type name is required.")
	}
	return name, nil
}

// ensureScopable an unrestricted tier has no group list to edit
func ensureScopable(tier *domain.AccountType) error {
	if tier.Entitlement.IsUnrestricted() {
		return errprocess.Invalid("Account type %s already grants all videos and cannot be scoped to specific groups.", tier.Name)
	}
	return nil
}
