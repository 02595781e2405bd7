package medalController

import (
	"strconv"

	"certstock/database"
	"certstock/middleware"
	"certstock/models"
	"certstock/utils"
	"certstock/workflow"

	"github.com/gofiber/fiber/v2"
)

// AddStock increments a branch's medal counter
func AddStock(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedAddStock").(*struct {
		BranchID uint `json:"branchId"`
		Quantity int  `json:"quantity"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	if err := workflow.AddMedalStock(tx, utils.Log, reqData.BranchID, reqData.Quantity, adminID, role); err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionMedalAdd), fiber.Map{
		"branchId": reqData.BranchID,
		"quantity": reqData.Quantity,
	})

	quantity, err := workflow.GetMedalStock(database.Database.Db, reqData.BranchID)
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Medal stock added!", fiber.Map{
		"branchId": reqData.BranchID,
		"quantity": quantity,
	})
}

// TransferStock moves medals between two branches of the same head branch
func TransferStock(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedTransfer").(*struct {
		FromBranchID uint `json:"fromBranchId"`
		ToBranchID   uint `json:"toBranchId"`
		Quantity     int  `json:"quantity"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	err := workflow.TransferMedalStock(tx, utils.Log, reqData.FromBranchID, reqData.ToBranchID,
		reqData.Quantity, adminID, role)
	if err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionMigrateOut), fiber.Map{
		"fromBranchId": reqData.FromBranchID,
		"toBranchId":   reqData.ToBranchID,
		"quantity":     reqData.Quantity,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Medal stock transferred!", nil)
}

// GetStock returns the current medal quantity of a branch
func GetStock(c *fiber.Ctx) error {
	branchID, err := strconv.Atoi(c.Query("branchId"))
	if err != nil || branchID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Branch ID is required!", nil)
	}

	quantity, err := workflow.GetMedalStock(database.Database.Db, uint(branchID))
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Medal stock fetched!", fiber.Map{
		"branchId": branchID,
		"quantity": quantity,
	})
}
