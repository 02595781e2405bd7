package certificateRoutes

import (
	activityController "certstock/controllers/activity"
	certificateController "certstock/controllers/certificate"
	"certstock/middleware"
	"certstock/models"
	certificateValidator "certstock/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCertificateRoutes sets up the admin certificate management routes
func SetupAdminCertificateRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))

	adminGroup := app.Group("/admin/certificates", middleware.JWTMiddleware, adminOnly)
	adminGroup.Post("/bulk-create", certificateValidator.BulkCreate(), certificateController.BulkCreateCertificates)
	adminGroup.Post("/migrate", certificateValidator.MigrateRange(), certificateController.MigrateCertificates)
	adminGroup.Get("/stock-count", certificateController.GetStockCount)

	logGroup := app.Group("/admin/logs", middleware.JWTMiddleware, adminOnly)
	logGroup.Get("/", activityController.GetActivityLogs)
}
