package handlers

import (
	"fmt"
	"strconv"
	"time"

	"video_access_service/internal/playback/app"
	"video_access_service/internal/playback/domain"
	"video_access_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler content, entitlement and license administration
type AdminHandler struct {
	Assets   app.AssetUseCase
	Groups   app.GroupUseCase
	Accounts app.AccountUseCase
	Licenses app.LicenseUseCase
	Audit    app.AuditUseCase
}

// NewAdminHandler create admin handler
func NewAdminHandler(
	assets app.AssetUseCase,
	groups app.GroupUseCase,
	accounts app.AccountUseCase,
	licenses app.LicenseUseCase,
	audit app.AuditUseCase,
) *AdminHandler {
	return &AdminHandler{
		Assets:   assets,
		Groups:   groups,
		Accounts: accounts,
		Licenses: licenses,
		Audit:    audit,
	}
}

type nameReq struct {
	Name string `json:"name"`
}

type groupAssetReq struct {
	VideoAssetID uuid.UUID `json:"videoAssetId"`
}

type accountTypeGroupReq struct {
	VideoGroupID uuid.UUID `json:"videoGroupId"`
}

type userAccountTypeReq struct {
	UserID      string `json:"userId"`
	AccountType string `json:"accountType"`
}

// record the mutation already happened, a failed audit write only gets logged
func (h *AdminHandler) record(c *fiber.Ctx, action, details string) {
	if err := h.Audit.Record(c.UserContext(), userID(c), action, details); err != nil {
		logger.Log.Warn("audit record failed",
			zap.String("action", action),
			zap.String("details", details),
			zap.Error(err),
		)
	}
}

// UpsertAsset godoc
// @Summary Register or rotate a content key
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body domain.AssetUpsertReq true "Video asset"
// @Success 200 {object} domain.VideoAsset
// @Router /admin/video-assets [post]
func (h *AdminHandler) UpsertAsset(c *fiber.Ctx) error {
	var req domain.AssetUpsertReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	asset, err := h.Assets.Upsert(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionAssetUpsert, fmt.Sprintf("videoPath=%s,keyVersion=%d", asset.VideoPath, asset.KeyVersion))
	return c.JSON(asset)
}

// DeleteAsset godoc
// @Summary Remove a content key
// @Tags Admin
// @Param videoPath query string true "Video path"
// @Success 204
// @Failure 404 {object} string "Not registered"
// @Router /admin/video-assets [delete]
func (h *AdminHandler) DeleteAsset(c *fiber.Ctx) error {
	videoPath := c.Query("videoPath")
	removed, err := h.Assets.Delete(c.UserContext(), videoPath)
	if err != nil {
		return respondError(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video asset not registered: " + videoPath})
	}
	h.record(c, domain.ActionAssetDelete, "videoPath="+videoPath)
	return c.SendStatus(fiber.StatusNoContent)
}

// SearchAssets godoc
// @Summary Search video assets by path
// @Tags Admin
// @Produce json
// @Param query query string false "Path fragment"
// @Success 200 {array} domain.VideoAsset
// @Router /admin/video-assets/search [get]
func (h *AdminHandler) SearchAssets(c *fiber.Ctx) error {
	assets, err := h.Assets.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	if assets == nil {
		assets = []domain.VideoAsset{}
	}
	return c.JSON(assets)
}

// CreateGroup godoc
// @Summary Create an empty video group
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.VideoAssetGroup
// @Failure 409 {object} string "Duplicate name"
// @Router /admin/video-groups [post]
func (h *AdminHandler) CreateGroup(c *fiber.Ctx) error {
	var req nameReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	group, err := h.Groups.CreateGroup(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionGroupCreate, "name="+group.Name)
	return c.JSON(group)
}

// DeleteGroup godoc
// @Summary Delete a video group
// @Tags Admin
// @Param groupId path string true "Group id"
// @Success 204
// @Router /admin/video-groups/{groupId} [delete]
func (h *AdminHandler) DeleteGroup(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "groupId must be a UUID")
	}

	if err := h.Groups.DeleteGroup(c.UserContext(), groupID); err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionGroupDelete, "groupId="+groupID.String())
	return c.SendStatus(fiber.StatusNoContent)
}

// AddGroupAsset godoc
// @Summary Add an asset to a video group
// @Tags Admin
// @Accept json
// @Produce json
// @Param groupId path string true "Group id"
// @Success 200 {object} domain.VideoAssetGroup
// @Router /admin/video-groups/{groupId}/assets [post]
func (h *AdminHandler) AddGroupAsset(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "groupId must be a UUID")
	}
	var req groupAssetReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.VideoAssetID == uuid.Nil {
		return badRequest(c, "videoAssetId is required")
	}

	group, err := h.Groups.AddAsset(c.UserContext(), groupID, req.VideoAssetID)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionGroupAddAsset, fmt.Sprintf("groupId=%s,assetId=%s", groupID, req.VideoAssetID))
	return c.JSON(group)
}

// RemoveGroupAsset godoc
// @Summary Remove an asset from a video group
// @Tags Admin
// @Produce json
// @Param groupId path string true "Group id"
// @Param assetId path string true "Asset id"
// @Success 200 {object} domain.VideoAssetGroup
// @Router /admin/video-groups/{groupId}/assets/{assetId} [delete]
func (h *AdminHandler) RemoveGroupAsset(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "groupId must be a UUID")
	}
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "assetId must be a UUID")
	}

	group, err := h.Groups.RemoveAsset(c.UserContext(), groupID, assetID)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionGroupRemoveAsset, fmt.Sprintf("groupId=%s,assetId=%s", groupID, assetID))
	return c.JSON(group)
}

// SearchGroups godoc
// @Summary Search video groups by name
// @Tags Admin
// @Produce json
// @Param query query string false "Name fragment"
// @Success 200 {array} domain.VideoAssetGroup
// @Router /admin/video-groups/search [get]
func (h *AdminHandler) SearchGroups(c *fiber.Ctx) error {
	groups, err := h.Groups.SearchGroups(c.UserContext(), c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	if groups == nil {
		groups = []domain.VideoAssetGroup{}
	}
	return c.JSON(groups)
}

// CreateAccountType godoc
// @Summary Create a tier that grants nothing until scoped
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.AccountTypeView
// @Router /admin/account-types [post]
func (h *AdminHandler) CreateAccountType(c *fiber.Ctx) error {
	var req nameReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	view, err := h.Accounts.CreateAccountType(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionAccountTypeCreate, "name="+view.Name)
	return c.JSON(view)
}

// ListAccountTypes godoc
// @Summary List tiers
// @Tags Admin
// @Produce json
// @Success 200 {array} domain.AccountTypeView
// @Router /admin/account-types [get]
func (h *AdminHandler) ListAccountTypes(c *fiber.Ctx) error {
	views, err := h.Accounts.ListAccountTypes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if views == nil {
		views = []domain.AccountTypeView{}
	}
	return c.JSON(views)
}

// AddAccountTypeGroup godoc
// @Summary Grant a video group to a tier
// @Tags Admin
// @Accept json
// @Produce json
// @Param name path string true "Tier name"
// @Success 200 {object} domain.AccountTypeView
// @Router /admin/account-types/{name}/video-groups [post]
func (h *AdminHandler) AddAccountTypeGroup(c *fiber.Ctx) error {
	var req accountTypeGroupReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.VideoGroupID == uuid.Nil {
		return badRequest(c, "videoGroupId is required")
	}

	view, err := h.Accounts.AddGroupToAccountType(c.UserContext(), c.Params("name"), req.VideoGroupID)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionAccountTypeAddGroup, fmt.Sprintf("name=%s,groupId=%s", view.Name, req.VideoGroupID))
	return c.JSON(view)
}

// RemoveAccountTypeGroup godoc
// @Summary Revoke a video group from a tier
// @Tags Admin
// @Produce json
// @Param name path string true "Tier name"
// @Param groupId path string true "Group id"
// @Success 200 {object} domain.AccountTypeView
// @Router /admin/account-types/{name}/video-groups/{groupId} [delete]
func (h *AdminHandler) RemoveAccountTypeGroup(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "groupId must be a UUID")
	}

	view, err := h.Accounts.RemoveGroupFromAccountType(c.UserContext(), c.Params("name"), groupID)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionAccountTypeRemoveGroup, fmt.Sprintf("name=%s,groupId=%s", view.Name, groupID))
	return c.JSON(view)
}

// SetUserAccountType godoc
// @Summary Assign a tier to a user
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.UserAccountType
// @Router /admin/user-account-types [put]
func (h *AdminHandler) SetUserAccountType(c *fiber.Ctx) error {
	var req userAccountTypeReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	assignment, err := h.Accounts.SetUserAccountType(c.UserContext(), req.UserID, req.AccountType)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionUserAccountTypeSet,
		fmt.Sprintf("userId=%s,accountType=%s", assignment.UserID, assignment.AccountType))
	return c.JSON(assignment)
}

// GetUserAccountType godoc
// @Summary Tier assigned to a user
// @Tags Admin
// @Produce json
// @Param userId query string true "User id"
// @Success 200 {object} domain.UserAccountType
// @Router /admin/user-account-types [get]
func (h *AdminHandler) GetUserAccountType(c *fiber.Ctx) error {
	assignment, err := h.Accounts.GetUserAccountType(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(assignment)
}

// UpsertLicense godoc
// @Summary Create or update a per user license
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body domain.LicenseUpsertReq true "License"
// @Success 200 {object} domain.UserVideoLicense
// @Router /admin/video-licenses [post]
func (h *AdminHandler) UpsertLicense(c *fiber.Ctx) error {
	var req domain.LicenseUpsertReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lic, err := h.Licenses.UpsertLicense(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	expires := "null"
	if lic.ExpiresAt != nil {
		expires = lic.ExpiresAt.UTC().Format(time.RFC3339)
	}
	h.record(c, domain.ActionLicenseUpsert, fmt.Sprintf("userId=%s,videoPath=%s,status=%s,expiresAt=%s",
		lic.UserID, lic.VideoID, lic.Status, expires))
	return c.JSON(lic)
}

// DeleteLicense godoc
// @Summary Remove a per user license, idempotent
// @Tags Admin
// @Param userId query string true "User id"
// @Param videoPath query string true "Video path"
// @Success 204
// @Router /admin/video-licenses [delete]
func (h *AdminHandler) DeleteLicense(c *fiber.Ctx) error {
	holder, videoPath := c.Query("userId"), c.Query("videoPath")
	removed, err := h.Licenses.DeleteLicense(c.UserContext(), holder, videoPath)
	if err != nil {
		return respondError(c, err)
	}
	h.record(c, domain.ActionLicenseDelete,
		fmt.Sprintf("userId=%s,videoPath=%s,removed=%s", holder, videoPath, strconv.FormatBool(removed)))
	return c.SendStatus(fiber.StatusNoContent)
}
