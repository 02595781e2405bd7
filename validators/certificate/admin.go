package certificateValidator

import (
	"certstock/middleware"
	"certstock/workflow"

	"github.com/gofiber/fiber/v2"
)

// BulkCreate validates an admin bulk certificate creation request
func BulkCreate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			HeadBranchID uint `json:"headBranchId"`
			StartNumber  int  `json:"startNumber"`
			EndNumber    int  `json:"endNumber"`
			WithMedal    bool `json:"withMedal"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.HeadBranchID == 0 {
			errors["headBranchId"] = "Head branch ID is required!"
		}
		if reqData.StartNumber < 1 {
			errors["startNumber"] = "Start number must be at least 1!"
		}
		if reqData.EndNumber < 1 {
			errors["endNumber"] = "End number must be at least 1!"
		}
		if reqData.StartNumber >= 1 && reqData.EndNumber >= 1 {
			if reqData.StartNumber > reqData.EndNumber {
				errors["endNumber"] = "End number must not be lower than start number!"
			} else if reqData.EndNumber-reqData.StartNumber+1 > workflow.MaxBulkCreateSize {
				errors["endNumber"] = "Range must not exceed 10,000 certificates!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkCreate", reqData)
		return c.Next()
	}
}

// MigrateRange validates an admin certificate migration request
func MigrateRange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			HeadBranchID uint `json:"headBranchId"`
			StartNumber  int  `json:"startNumber"`
			EndNumber    int  `json:"endNumber"`
			ToBranchID   uint `json:"toBranchId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.HeadBranchID == 0 {
			errors["headBranchId"] = "Head branch ID is required!"
		}
		if reqData.ToBranchID == 0 {
			errors["toBranchId"] = "Destination branch ID is required!"
		}
		if reqData.StartNumber < 1 {
			errors["startNumber"] = "Start number must be at least 1!"
		}
		if reqData.EndNumber < 1 {
			errors["endNumber"] = "End number must be at least 1!"
		}
		if reqData.StartNumber >= 1 && reqData.EndNumber >= 1 && reqData.StartNumber > reqData.EndNumber {
			errors["endNumber"] = "End number must not be lower than start number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMigrateRange", reqData)
		return c.Next()
	}
}
