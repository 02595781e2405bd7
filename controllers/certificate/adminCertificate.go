package certificateController

import (
	"strconv"

	"certstock/database"
	"certstock/middleware"
	"certstock/models"
	"certstock/utils"
	"certstock/workflow"

	"github.com/gofiber/fiber/v2"
)

// BulkCreateCertificates creates a numbered certificate range for a head branch
func BulkCreateCertificates(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedBulkCreate").(*struct {
		HeadBranchID uint `json:"headBranchId"`
		StartNumber  int  `json:"startNumber"`
		EndNumber    int  `json:"endNumber"`
		WithMedal    bool `json:"withMedal"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	certificates, err := workflow.BulkCreateCertificates(tx, utils.Log, reqData.HeadBranchID,
		reqData.StartNumber, reqData.EndNumber, reqData.WithMedal, adminID, role)
	if err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionBulkCreate), fiber.Map{
		"headBranchId": reqData.HeadBranchID,
		"startNumber":  reqData.StartNumber,
		"endNumber":    reqData.EndNumber,
		"count":        len(certificates),
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificates created!", fiber.Map{
		"count":       len(certificates),
		"firstNumber": certificates[0].Number,
		"lastNumber":  certificates[len(certificates)-1].Number,
	})
}

// MigrateCertificates relocates a certificate number range to a sub-branch
func MigrateCertificates(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedMigrateRange").(*struct {
		HeadBranchID uint `json:"headBranchId"`
		StartNumber  int  `json:"startNumber"`
		EndNumber    int  `json:"endNumber"`
		ToBranchID   uint `json:"toBranchId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	migrated, err := workflow.MigrateCertificateRange(tx, utils.Log, reqData.HeadBranchID,
		reqData.StartNumber, reqData.EndNumber, reqData.ToBranchID, adminID, role)
	if err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionMigrate), fiber.Map{
		"headBranchId": reqData.HeadBranchID,
		"toBranchId":   reqData.ToBranchID,
		"count":        migrated,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates migrated!", fiber.Map{
		"migrated": migrated,
	})
}

// GetStockCount returns certificate counts per status for one branch
func GetStockCount(c *fiber.Ctx) error {
	branchID, err := strconv.Atoi(c.Query("branchId"))
	if err != nil || branchID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Branch ID is required!", nil)
	}

	counts, err := workflow.GetStockCount(database.Database.Db, uint(branchID))
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stock count fetched!", counts)
}
