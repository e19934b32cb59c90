package router

import (
	"video_access_service/internal/playback/api/handlers"
	"video_access_service/pkg/metrics"
	"video_access_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes playback service routes
// @title Video Access Service API
// @version 1.0
// @description Licensed playback and content key administration
// @BasePath /
func RegisterRoutes(app *fiber.App, userHandler *handlers.UserVideoHandler, adminHandler *handlers.AdminHandler, adminRole string) {
	app.Use(metrics.Middleware())
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)
	app.Get("/metrics", metrics.Handler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	userRoutes := app.Group("/user", middlewares.JWTMiddleware())
	userRoutes.Get("/video", userHandler.GetVideo)
	userRoutes.Get("/video/license/status", userHandler.LicenseStatus)
	userRoutes.Get("/video/license/key", userHandler.LicenseKey)

	adminRoutes := app.Group("/admin", middlewares.JWTMiddleware(), middlewares.RequireRole(adminRole))

	assetRoutes := adminRoutes.Group("/video-assets")
	assetRoutes.Post("/", adminHandler.UpsertAsset)
	assetRoutes.Delete("/", adminHandler.DeleteAsset)
	assetRoutes.Get("/search", adminHandler.SearchAssets)

	groupRoutes := adminRoutes.Group("/video-groups")
	groupRoutes.Post("/", adminHandler.CreateGroup)
	groupRoutes.Get("/search", adminHandler.SearchGroups)
	groupRoutes.Delete("/:groupId", adminHandler.DeleteGroup)
	groupRoutes.Post("/:groupId/assets", adminHandler.AddGroupAsset)
	groupRoutes.Delete("/:groupId/assets/:assetId", adminHandler.RemoveGroupAsset)

	accountRoutes := adminRoutes.Group("/account-types")
	accountRoutes.Post("/", adminHandler.CreateAccountType)
	accountRoutes.Get("/", adminHandler.ListAccountTypes)
	accountRoutes.Post("/:name/video-groups", adminHandler.AddAccountTypeGroup)
	accountRoutes.Delete("/:name/video-groups/:groupId", adminHandler.RemoveAccountTypeGroup)

	userTypeRoutes := adminRoutes.Group("/user-account-types")
	userTypeRoutes.Put("/", adminHandler.SetUserAccountType)
	userTypeRoutes.Get("/", adminHandler.GetUserAccountType)

	licenseRoutes := adminRoutes.Group("/video-licenses")
	licenseRoutes.Post("/", adminHandler.UpsertLicense)
	licenseRoutes.Delete("/", adminHandler.DeleteLicense)
}
