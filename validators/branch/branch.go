package branchValidator

import (
	"certstock/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateBranch validates an admin branch creation request
func CreateBranch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code         string `json:"code"`
			Name         string `json:"name"`
			IsHeadBranch bool   `json:"isHeadBranch"`
			ParentID     uint   `json:"parentId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Code == "" {
			errors["code"] = "Branch code is required!"
		}
		if reqData.Name == "" {
			errors["name"] = "Branch name is required!"
		}
		if reqData.IsHeadBranch && reqData.ParentID != 0 {
			errors["parentId"] = "A head branch cannot have a parent!"
		}
		if !reqData.IsHeadBranch && reqData.ParentID == 0 {
			errors["parentId"] = "A sub-branch requires a parent head branch!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateBranch", reqData)
		return c.Next()
	}
}
