package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"video_access_service/internal/playback/app"
	"video_access_service/internal/playback/domain"
	"video_access_service/pkg/logger"
	"video_access_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// asUser stands in for JWTMiddleware
func asUser(uid string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middlewares.TokenUserID, uid)
		return c.Next()
	}
}

func newUserApp(h *UserVideoHandler) *fiber.App {
	a := fiber.New()
	a.Use(asUser("user-1"))
	a.Get("/user/video", h.GetVideo)
	a.Get("/user/video/license/status", h.LicenseStatus)
	a.Get("/user/video/license/key", h.LicenseKey)
	return a
}

func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestGetVideo(t *testing.T) {
	logger.SetNewNop()

	t.Run("issues credentials", func(t *testing.T) {
		playback := new(app.MockPlaybackUseCase)
		playback.On("Issue", mock.Anything, "user-1", "clips/swing1", domain.CodecH264, time.Duration(0)).
			Return(&domain.CredentialBundle{
				VideoURL:         "https://cdn.example.com/videos/clips/swing1/swing1_sourcefps_h264.mp4?Signature=x",
				MetadataURL:      "https://cdn.example.com/videos/clips/swing1/swing1_metadata.json?Signature=y",
				Codec:            domain.CodecH264,
				ExpiresInSeconds: 300,
				SignedCookies:    map[string]string{"CloudFront-Policy": "p"},
			}, nil)

		resp, err := newUserApp(NewUserVideoHandler(playback, nil)).
			Test(httptest.NewRequest(http.MethodGet, "/user/video?videoPath=clips/swing1&codec=H264", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := readJSON(t, resp)
		assert.Equal(t, "h264", body["codec"])
		assert.Equal(t, float64(300), body["expiresInSeconds"])
		playback.AssertExpectations(t)
	})

	t.Run("unsupported codec", func(t *testing.T) {
		playback := new(app.MockPlaybackUseCase)

		resp, err := newUserApp(NewUserVideoHandler(playback, nil)).
			Test(httptest.NewRequest(http.MethodGet, "/user/video?videoPath=clips/swing1&codec=vp9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Unsupported video codec: vp9", readJSON(t, resp)["error"])
		playback.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("denied", func(t *testing.T) {
		playback := new(app.MockPlaybackUseCase)
		playback.On("Issue", mock.Anything, "user-1", "clips/swing1", domain.CodecHEVC, time.Duration(0)).
			Return(nil, &domain.AccessDeniedError{VideoID: "clips/swing1", Reason: domain.DenialRevoked})

		resp, err := newUserApp(NewUserVideoHandler(playback, nil)).
			Test(httptest.NewRequest(http.MethodGet, "/user/video?videoPath=clips/swing1&codec=hevc", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		body := readJSON(t, resp)
		assert.Equal(t, "REVOKED", body["reason"])
		assert.Equal(t, "This video license has been revoked.", body["error"])
	})

	t.Run("internal failure does not leak detail", func(t *testing.T) {
		playback := new(app.MockPlaybackUseCase)
		playback.On("Issue", mock.Anything, "user-1", "clips/swing1", domain.CodecH264, time.Duration(0)).
			Return(nil, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

		resp, err := newUserApp(NewUserVideoHandler(playback, nil)).
			Test(httptest.NewRequest(http.MethodGet, "/user/video?videoPath=clips/swing1&codec=h264", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal server error", readJSON(t, resp)["error"])
	})
}

func TestLicenseStatus(t *testing.T) {
	logger.SetNewNop()

	reason := domain.DenialNotFound
	licenses := new(app.MockLicenseUseCase)
	licenses.On("Check", mock.Anything, "user-1", "/clips/swing1/").Return(domain.LicenseDecision{
		VideoID:      "clips/swing1",
		CheckedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		DenialReason: &reason,
	}, nil)

	resp, err := newUserApp(NewUserVideoHandler(nil, licenses)).
		Test(httptest.NewRequest(http.MethodGet, "/user/video/license/status?videoPath=/clips/swing1/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readJSON(t, resp)
	assert.Equal(t, false, body["licenseGranted"])
	assert.Equal(t, "NOT_FOUND", body["denialReason"])
	assert.Nil(t, body["status"])
}

func TestLicenseKey(t *testing.T) {
	logger.SetNewNop()
	key := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

	t.Run("returns raw key without caching", func(t *testing.T) {
		playback := new(app.MockPlaybackUseCase)
		playback.On("LicenseKey", mock.Anything, "user-1", "clips/swing1").Return(key, nil)

		resp, err := newUserApp(NewUserVideoHandler(playback, nil)).
			Test(httptest.NewRequest(http.MethodGet, "/user/video/license/key?videoPath=clips/swing1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
		assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, key, body)
	})

	t.Run("denied", func(t *testing.T) {
		playback := new(app.MockPlaybackUseCase)
		playback.On("LicenseKey", mock.Anything, "user-1", "clips/swing1").
			Return(nil, &domain.AccessDeniedError{VideoID: "clips/swing1", Reason: domain.DenialExpired})

		resp, err := newUserApp(NewUserVideoHandler(playback, nil)).
			Test(httptest.NewRequest(http.MethodGet, "/user/video/license/key?videoPath=clips/swing1&codec=h264", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "EXPIRED", readJSON(t, resp)["reason"])
	})
}

func TestOpsHandlers(t *testing.T) {
	logger.SetNewNop()
	a := fiber.New()
	a.Get("/", ConnectCheck)
	a.Post("/debug", DebugLogFlag)

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "playback service start!", string(body))

	resp, err = a.Test(httptest.NewRequest(http.MethodPost, "/debug?service=playback&status=true", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, logger.Log.DebugMode())

	resp, err = a.Test(httptest.NewRequest(http.MethodPost, "/debug?service=playback&status=maybe", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
