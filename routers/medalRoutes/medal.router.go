package medalRoutes

import (
	medalController "certstock/controllers/medal"
	"certstock/middleware"
	"certstock/models"
	medalValidator "certstock/validators/medal"

	"github.com/gofiber/fiber/v2"
)

// SetupMedalRoutes sets up the admin medal stock routes
func SetupMedalRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))

	medalGroup := app.Group("/admin/medals", middleware.JWTMiddleware, adminOnly)
	medalGroup.Post("/add", medalValidator.AddStock(), medalController.AddStock)
	medalGroup.Post("/transfer", medalValidator.Transfer(), medalController.TransferStock)
	medalGroup.Get("/stock", medalController.GetStock)
}
