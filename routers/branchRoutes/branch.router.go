package branchRoutes

import (
	branchController "certstock/controllers/branch"
	"certstock/middleware"
	"certstock/models"
	branchValidator "certstock/validators/branch"

	"github.com/gofiber/fiber/v2"
)

// SetupBranchRoutes sets up the admin branch routes
func SetupBranchRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))

	branchGroup := app.Group("/admin/branches", middleware.JWTMiddleware, adminOnly)
	branchGroup.Post("/", branchValidator.CreateBranch(), branchController.CreateBranch)
	branchGroup.Get("/", branchController.ListBranches)
}
