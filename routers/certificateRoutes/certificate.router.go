package certificateRoutes

import (
	certificateController "certstock/controllers/certificate"
	"certstock/middleware"
	"certstock/models"
	certificateValidator "certstock/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up the teacher-facing certificate routes
func SetupCertificateRoutes(app *fiber.App) {
	certificateGroup := app.Group("/certificates", middleware.JWTMiddleware)

	teacherOnly := middleware.RequireRole(string(models.RoleTeacher))

	certificateGroup.Post("/reserve", teacherOnly, certificateValidator.Reserve(), certificateController.ReserveCertificate)
	certificateGroup.Post("/release", teacherOnly, certificateValidator.Release(), certificateController.ReleaseCertificate)
	certificateGroup.Get("/reservations", teacherOnly, certificateController.GetMyReservations)
	certificateGroup.Post("/print", teacherOnly, certificateValidator.Print(), certificateController.PrintCertificate)
	certificateGroup.Post("/reprint", teacherOnly, certificateValidator.Reprint(), certificateController.ReprintCertificate)
	certificateGroup.Get("/:id/history", certificateController.GetPrintHistory)
}
