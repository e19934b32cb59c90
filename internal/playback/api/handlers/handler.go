package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"video_access_service/internal/playback/domain"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"
	"video_access_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check playback service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "playback service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("playback service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging for a service
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, err := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// userID trusted caller id placed by JWTMiddleware
func userID(c *fiber.Ctx) string {
	uid, _ := c.Locals(middlewares.TokenUserID).(string)
	return uid
}

// respondError maps classified errors to a status; anything unclassified is a 500 without detail
func respondError(c *fiber.Ctx, err error) error {
	var denied *domain.AccessDeniedError
	switch {
	case errors.As(err, &denied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   denied.Error(),
			"reason":  denied.Reason,
			"videoId": denied.VideoID,
		})
	case errors.Is(err, errprocess.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errprocess.PublicMessage(err, "Invalid request")})
	case errors.Is(err, errprocess.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errprocess.PublicMessage(err, "Not found")})
	case errors.Is(err, errprocess.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errprocess.PublicMessage(err, "Conflict")})
	}
	logger.Log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// badRequest malformed body or path parameter
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
