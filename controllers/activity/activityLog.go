package activityController

import (
	"strconv"

	"certstock/database"
	"certstock/middleware"
	"certstock/models"

	"github.com/gofiber/fiber/v2"
)

// GetActivityLogs returns the audit trail newest first, with paging and
// optional filters. Export formatting is handled downstream.
func GetActivityLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := database.Database.Db.Model(&models.ActivityLog{})

	if actionType := c.Query("actionType"); actionType != "" {
		query = query.Where("action_type = ?", actionType)
	}
	if certificateID, err := strconv.Atoi(c.Query("certificateId")); err == nil && certificateID > 0 {
		query = query.Where("certificate_id = ?", certificateID)
	}
	if actorID, err := strconv.Atoi(c.Query("actorId")); err == nil && actorID > 0 {
		query = query.Where("actor_id = ?", actorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	var logs []models.ActivityLog
	err := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity logs fetched!", fiber.Map{
		"logs":  logs,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}
