package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"video_access_service/internal/playback/app"
	"video_access_service/internal/playback/domain"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminMocks struct {
	assets   *app.MockAssetUseCase
	groups   *app.MockGroupUseCase
	accounts *app.MockAccountUseCase
	licenses *app.MockLicenseUseCase
	audit    *app.MockAuditUseCase
}

func newAdminApp() (*fiber.App, adminMocks) {
	m := adminMocks{
		assets:   new(app.MockAssetUseCase),
		groups:   new(app.MockGroupUseCase),
		accounts: new(app.MockAccountUseCase),
		licenses: new(app.MockLicenseUseCase),
		audit:    new(app.MockAuditUseCase),
	}
	h := NewAdminHandler(m.assets, m.groups, m.accounts, m.licenses, m.audit)

	a := fiber.New()
	a.Use(asUser("admin-1"))
	a.Post("/admin/video-assets", h.UpsertAsset)
	a.Delete("/admin/video-assets", h.DeleteAsset)
	a.Get("/admin/video-assets/search", h.SearchAssets)
	a.Post("/admin/video-groups", h.CreateGroup)
	a.Delete("/admin/video-groups/:groupId", h.DeleteGroup)
	a.Post("/admin/video-groups/:groupId/assets", h.AddGroupAsset)
	a.Delete("/admin/video-groups/:groupId/assets/:assetId", h.RemoveGroupAsset)
	a.Get("/admin/video-groups/search", h.SearchGroups)
	a.Post("/admin/account-types", h.CreateAccountType)
	a.Get("/admin/account-types", h.ListAccountTypes)
	a.Post("/admin/account-types/:name/video-groups", h.AddAccountTypeGroup)
	a.Delete("/admin/account-types/:name/video-groups/:groupId", h.RemoveAccountTypeGroup)
	a.Put("/admin/user-account-types", h.SetUserAccountType)
	a.Get("/admin/user-account-types", h.GetUserAccountType)
	a.Post("/admin/video-licenses", h.UpsertLicense)
	a.Delete("/admin/video-licenses", h.DeleteLicense)
	return a, m
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdminAssets(t *testing.T) {
	logger.SetNewNop()

	t.Run("upsert records audit", func(t *testing.T) {
		a, m := newAdminApp()
		version := 2
		req := domain.AssetUpsertReq{
			VideoPath:  "clips/swing1",
			KeyHex:     "00112233445566778899AABBCCDDEEFF",
			KeyBase64:  "ABEiM0RVZneImaq7zN3u/w==",
			KeyVersion: &version,
		}
		m.assets.On("Upsert", mock.Anything, req).
			Return(&domain.VideoAsset{ID: uuid.New(), VideoPath: "clips/swing1", KeyVersion: 2}, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionAssetUpsert, "videoPath=clips/swing1,keyVersion=2").Return(nil)

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-assets",
			`{"videoPath":"clips/swing1","keyHex":"00112233445566778899AABBCCDDEEFF","keyBase64":"ABEiM0RVZneImaq7zN3u/w==","keyVersion":2}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := readJSON(t, resp)
		assert.NotContains(t, body, "keyHex")
		assert.NotContains(t, body, "keyBase64")
		m.assets.AssertExpectations(t)
		m.audit.AssertExpectations(t)
	})

	t.Run("invalid key is rejected without audit", func(t *testing.T) {
		a, m := newAdminApp()
		m.assets.On("Upsert", mock.Anything, mock.Anything).Return(nil, errprocess.Invalid("keyHex must be 32 characters"))

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-assets", `{"videoPath":"clips/swing1","keyHex":"00"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "keyHex must be 32 characters", readJSON(t, resp)["error"])
		m.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		a, _ := newAdminApp()

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-assets", `{"videoPath":`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete missing asset", func(t *testing.T) {
		a, m := newAdminApp()
		m.assets.On("Delete", mock.Anything, "clips/none").Return(false, nil)

		resp, err := a.Test(httptest.NewRequest(http.MethodDelete, "/admin/video-assets?videoPath=clips/none", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		m.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete", func(t *testing.T) {
		a, m := newAdminApp()
		m.assets.On("Delete", mock.Anything, "clips/swing1").Return(true, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionAssetDelete, "videoPath=clips/swing1").Return(nil)

		resp, err := a.Test(httptest.NewRequest(http.MethodDelete, "/admin/video-assets?videoPath=clips/swing1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		m.audit.AssertExpectations(t)
	})

	t.Run("search never returns null", func(t *testing.T) {
		a, m := newAdminApp()
		m.assets.On("Search", mock.Anything, "swing").Return(nil, nil)

		resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/admin/video-assets/search?query=swing", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestAdminGroups(t *testing.T) {
	logger.SetNewNop()
	groupID := uuid.New()
	assetID := uuid.New()

	t.Run("create", func(t *testing.T) {
		a, m := newAdminApp()
		m.groups.On("CreateGroup", mock.Anything, "Premium").
			Return(&domain.VideoAssetGroup{ID: groupID, Name: "premium"}, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionGroupCreate, "name=premium").Return(nil)

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-groups", `{"name":"Premium"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "premium", readJSON(t, resp)["name"])
		m.audit.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		a, m := newAdminApp()
		m.groups.On("CreateGroup", mock.Anything, "premium").
			Return(nil, errprocess.Conflict("Video group already exists: %s", "premium"))

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-groups", `{"name":"premium"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Video group already exists: premium", readJSON(t, resp)["error"])
	})

	t.Run("add asset", func(t *testing.T) {
		a, m := newAdminApp()
		m.groups.On("AddAsset", mock.Anything, groupID, assetID).
			Return(&domain.VideoAssetGroup{ID: groupID, Name: "premium", VideoAssetIDs: []uuid.UUID{assetID}}, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionGroupAddAsset,
			"groupId="+groupID.String()+",assetId="+assetID.String()).Return(nil)

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-groups/"+groupID.String()+"/assets",
			`{"videoAssetId":"`+assetID.String()+`"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		m.groups.AssertExpectations(t)
		m.audit.AssertExpectations(t)
	})

	t.Run("bad group id", func(t *testing.T) {
		a, m := newAdminApp()

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-groups/not-a-uuid/assets",
			`{"videoAssetId":"`+assetID.String()+`"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		m.groups.AssertNotCalled(t, "AddAsset", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing asset id", func(t *testing.T) {
		a, _ := newAdminApp()

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-groups/"+groupID.String()+"/assets", `{}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "videoAssetId is required", readJSON(t, resp)["error"])
	})

	t.Run("remove absent asset", func(t *testing.T) {
		a, m := newAdminApp()
		m.groups.On("RemoveAsset", mock.Anything, groupID, assetID).
			Return(nil, errprocess.NotFound("Video asset not in group: %s", assetID))

		resp, err := a.Test(httptest.NewRequest(http.MethodDelete,
			"/admin/video-groups/"+groupID.String()+"/assets/"+assetID.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		m.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete", func(t *testing.T) {
		a, m := newAdminApp()
		m.groups.On("DeleteGroup", mock.Anything, groupID).Return(nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionGroupDelete, "groupId="+groupID.String()).Return(nil)

		resp, err := a.Test(httptest.NewRequest(http.MethodDelete, "/admin/video-groups/"+groupID.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		m.audit.AssertExpectations(t)
	})
}

func TestAdminAccountTypes(t *testing.T) {
	logger.SetNewNop()
	groupID := uuid.New()

	t.Run("add group to unrestricted tier", func(t *testing.T) {
		a, m := newAdminApp()
		m.accounts.On("AddGroupToAccountType", mock.Anything, "tier_9", groupID).
			Return(domain.AccountTypeView{}, errprocess.Invalid("Account type %s already has unrestricted access", "tier_9"))

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/account-types/tier_9/video-groups",
			`{"videoGroupId":"`+groupID.String()+`"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		m.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("remove group", func(t *testing.T) {
		a, m := newAdminApp()
		m.accounts.On("RemoveGroupFromAccountType", mock.Anything, "tier_1", groupID).
			Return(domain.AccountTypeView{Name: "tier_1", VideoGroupIDs: []uuid.UUID{}}, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionAccountTypeRemoveGroup,
			"name=tier_1,groupId="+groupID.String()).Return(nil)

		resp, err := a.Test(httptest.NewRequest(http.MethodDelete,
			"/admin/account-types/tier_1/video-groups/"+groupID.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		m.audit.AssertExpectations(t)
	})

	t.Run("list", func(t *testing.T) {
		a, m := newAdminApp()
		m.accounts.On("ListAccountTypes", mock.Anything).Return([]domain.AccountTypeView{
			{Name: "tier_0", VideoGroupIDs: []uuid.UUID{}},
			{Name: "tier_9", Unrestricted: true},
		}, nil)

		resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/admin/account-types", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("assign user tier", func(t *testing.T) {
		a, m := newAdminApp()
		m.accounts.On("SetUserAccountType", mock.Anything, "user-7", "tier_9").
			Return(&domain.UserAccountType{UserID: "user-7", AccountType: "tier_9"}, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionUserAccountTypeSet,
			"userId=user-7,accountType=tier_9").Return(nil)

		resp, err := a.Test(jsonRequest(http.MethodPut, "/admin/user-account-types", `{"userId":"user-7","accountType":"tier_9"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		m.audit.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		a, m := newAdminApp()
		m.accounts.On("GetUserAccountType", mock.Anything, "user-404").
			Return(nil, errprocess.NotFound("No account type assignment for userId: %s", "user-404"))

		resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/admin/user-account-types?userId=user-404", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminLicenses(t *testing.T) {
	logger.SetNewNop()

	t.Run("upsert survives audit failure", func(t *testing.T) {
		a, m := newAdminApp()
		expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		matchReq := mock.MatchedBy(func(r domain.LicenseUpsertReq) bool {
			return r.UserID == "user-7" && r.VideoPath == "clips/swing1" &&
				r.Status != nil && *r.Status == "suspended" &&
				r.ExpiresAt != nil && r.ExpiresAt.Equal(expires)
		})
		m.licenses.On("UpsertLicense", mock.Anything, matchReq).Return(&domain.UserVideoLicense{
			ID:        uuid.New(),
			UserID:    "user-7",
			VideoID:   "clips/swing1",
			Status:    domain.LicenseSuspended,
			ExpiresAt: &expires,
		}, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionLicenseUpsert,
			"userId=user-7,videoPath=clips/swing1,status=SUSPENDED,expiresAt=2026-12-31T00:00:00Z").
			Return(errors.New("audit table unavailable"))

		resp, err := a.Test(jsonRequest(http.MethodPost, "/admin/video-licenses",
			`{"userId":"user-7","videoPath":"clips/swing1","status":"suspended","expiresAt":"2026-12-31T00:00:00Z"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "SUSPENDED", readJSON(t, resp)["status"])
		m.audit.AssertExpectations(t)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		a, m := newAdminApp()
		m.licenses.On("DeleteLicense", mock.Anything, "user-7", "clips/swing1").Return(false, nil)
		m.audit.On("Record", mock.Anything, "admin-1", domain.ActionLicenseDelete,
			"userId=user-7,videoPath=clips/swing1,removed=false").Return(nil)

		resp, err := a.Test(httptest.NewRequest(http.MethodDelete, "/admin/video-licenses?userId=user-7&videoPath=clips/swing1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		m.audit.AssertExpectations(t)
	})

	t.Run("integrity failure is a 500", func(t *testing.T) {
		a, m := newAdminApp()
		m.licenses.On("DeleteLicense", mock.Anything, "user-7", "clips/swing1").
			Return(false, &errprocess.Error{Kind: errprocess.ErrIntegrity, Msg: "stored row unreadable"})

		resp, err := a.Test(httptest.NewRequest(http.MethodDelete, "/admin/video-licenses?userId=user-7&videoPath=clips/swing1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal server error", readJSON(t, resp)["error"])
	})
}
