package branchController

import (
	"certstock/database"
	"certstock/middleware"
	"certstock/models"
	"certstock/utils"
	"certstock/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateBranch registers a head or sub-branch. Every new branch gets its
// zero-quantity medal stock row in the same transaction. Full branch
// administration lives in a separate service; this is the minimal surface
// the stock engine needs.
func CreateBranch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateBranch").(*struct {
		Code         string `json:"code"`
		Name         string `json:"name"`
		IsHeadBranch bool   `json:"isHeadBranch"`
		ParentID     uint   `json:"parentId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Branch codes are unique
	var existing models.Branch
	if err := db.Where("code = ?", reqData.Code).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Branch code already exists!", nil)
	}

	branch := models.Branch{
		Code:         reqData.Code,
		Name:         reqData.Name,
		IsHeadBranch: reqData.IsHeadBranch,
		IsActive:     true,
	}
	if !reqData.IsHeadBranch {
		var parent models.Branch
		if err := db.First(&parent, reqData.ParentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent branch not found!", nil)
		}
		if !parent.IsHeadBranch {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Parent must be a head branch!", nil)
		}
		parentID := parent.ID
		branch.ParentID = &parentID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}
		return workflow.InitMedalStock(tx, branch.ID)
	})
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.Log.WithField("code", branch.Code).Info("branch created")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Branch created!", branch)
}

// ListBranches returns all branches, head branches first
func ListBranches(c *fiber.Ctx) error {
	var branches []models.Branch
	err := database.Database.Db.
		Order("is_head_branch DESC, code ASC").
		Find(&branches).Error
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Branches fetched!", fiber.Map{
		"branches": branches,
	})
}
