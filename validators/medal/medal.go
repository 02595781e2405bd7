package medalValidator

import (
	"certstock/middleware"

	"github.com/gofiber/fiber/v2"
)

// AddStock validates an admin medal stock addition request
func AddStock() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BranchID uint `json:"branchId"`
			Quantity int  `json:"quantity"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.BranchID == 0 {
			errors["branchId"] = "Branch ID is required!"
		}
		if reqData.Quantity <= 0 {
			errors["quantity"] = "Quantity must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddStock", reqData)
		return c.Next()
	}
}

// Transfer validates an admin medal stock transfer request
func Transfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FromBranchID uint `json:"fromBranchId"`
			ToBranchID   uint `json:"toBranchId"`
			Quantity     int  `json:"quantity"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.FromBranchID == 0 {
			errors["fromBranchId"] = "Source branch ID is required!"
		}
		if reqData.ToBranchID == 0 {
			errors["toBranchId"] = "Destination branch ID is required!"
		}
		if reqData.FromBranchID != 0 && reqData.FromBranchID == reqData.ToBranchID {
			errors["toBranchId"] = "Source and destination branch must differ!"
		}
		if reqData.Quantity <= 0 {
			errors["quantity"] = "Quantity must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTransfer", reqData)
		return c.Next()
	}
}
