package certificateValidator

import (
	"time"

	"certstock/middleware"

	"github.com/gofiber/fiber/v2"
)

// Reserve validates a teacher's certificate reservation request
func Reserve() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BranchID uint `json:"branchId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.BranchID == 0 {
			errors["branchId"] = "Branch ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReserve", reqData)
		return c.Next()
	}
}

// Release validates a teacher's reservation release request
func Release() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CertificateID uint `json:"certificateId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CertificateID == 0 {
			errors["certificateId"] = "Certificate ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRelease", reqData)
		return c.Next()
	}
}

// PrintRequest is shared by Print and Reprint
type PrintRequest struct {
	CertificateID uint   `json:"certificateId"`
	StudentName   string `json:"studentName"`
	ModuleID      uint   `json:"moduleId"`
	PTCDate       string `json:"ptcDate"` // YYYY-MM-DD
}

func validatePrintRequest(c *fiber.Ctx, localsKey string) error {
	reqData := new(PrintRequest)

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)

	if reqData.CertificateID == 0 {
		errors["certificateId"] = "Certificate ID is required!"
	}
	if reqData.StudentName == "" {
		errors["studentName"] = "Student name is required!"
	}
	if reqData.ModuleID == 0 {
		errors["moduleId"] = "Module ID is required!"
	}
	if reqData.PTCDate == "" {
		errors["ptcDate"] = "PTC date is required!"
	} else if _, err := time.Parse("2006-01-02", reqData.PTCDate); err != nil {
		errors["ptcDate"] = "PTC date must be in YYYY-MM-DD format!"
	}

	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	c.Locals(localsKey, reqData)
	return c.Next()
}

// Print validates a teacher's print request
func Print() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validatePrintRequest(c, "validatedPrint")
	}
}

// Reprint validates a teacher's reprint request
func Reprint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validatePrintRequest(c, "validatedReprint")
	}
}
