package handlers

import (
	"video_access_service/internal/playback/app"
	"video_access_service/internal/playback/domain"

	"github.com/gofiber/fiber/v2"
)

// UserVideoHandler playback routes of authenticated users
type UserVideoHandler struct {
	Playback app.PlaybackUseCase
	Licenses app.LicenseUseCase
}

// NewUserVideoHandler create user video handler
func NewUserVideoHandler(playback app.PlaybackUseCase, licenses app.LicenseUseCase) *UserVideoHandler {
	return &UserVideoHandler{
		Playback: playback,
		Licenses: licenses,
	}
}

// GetVideo godoc
// @Summary Issue signed playback credentials
// @Description Checks the caller's license, then signs the video and metadata URLs and the prefix cookies
// @Tags User
// @Produce json
// @Param videoPath query string true "Video path"
// @Param codec query string true "Codec (h264 or hevc)"
// @Success 200 {object} domain.CredentialBundle
// @Failure 400 {object} string "Bad Request"
// @Failure 403 {object} string "License denied"
// @Router /user/video [get]
func (h *UserVideoHandler) GetVideo(c *fiber.Ctx) error {
	codec, err := domain.ParseVideoCodec(c.Query("codec"))
	if err != nil {
		return respondError(c, err)
	}

	bundle, err := h.Playback.Issue(c.UserContext(), userID(c), c.Query("videoPath"), codec, 0)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bundle)
}

// LicenseStatus godoc
// @Summary Playback decision for one video
// @Tags User
// @Produce json
// @Param videoPath query string true "Video path"
// @Success 200 {object} domain.LicenseDecision
// @Router /user/video/license/status [get]
func (h *UserVideoHandler) LicenseStatus(c *fiber.Ctx) error {
	decision, err := h.Licenses.Check(c.UserContext(), userID(c), c.Query("videoPath"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(decision)
}

// LicenseKey godoc
// @Summary Raw content key of a licensed video
// @Tags User
// @Produce octet-stream
// @Param videoPath query string true "Video path"
// @Success 200 {string} binary "16 byte key"
// @Failure 403 {object} string "License denied"
// @Router /user/video/license/key [get]
func (h *UserVideoHandler) LicenseKey(c *fiber.Ctx) error {
	// codec is accepted for player compatibility, the key does not depend on it
	if raw := c.Query("codec"); raw != "" {
		if _, err := domain.ParseVideoCodec(raw); err != nil {
			return respondError(c, err)
		}
	}

	key, err := h.Playback.LicenseKey(c.UserContext(), userID(c), c.Query("videoPath"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(key)
}
