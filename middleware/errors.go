package middleware

import (
	"errors"

	"certstock/config"
	"certstock/workflow"

	"github.com/gofiber/fiber/v2"
)

// WorkflowErrorResponse maps engine errors onto stable HTTP responses so UIs
// can branch on the message. Unknown errors are never exposed verbatim
// outside debug mode.
func WorkflowErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, workflow.ErrInvalidRange):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate number range!", nil)
	case errors.Is(err, workflow.ErrRangeTooLarge):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Range exceeds the 10,000 certificate limit!", nil)
	case errors.Is(err, workflow.ErrValidation):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	case errors.Is(err, workflow.ErrDuplicateRange):
		return JsonResponse(c, fiber.StatusConflict, false, "Certificate numbers in this range already exist!", nil)
	case errors.Is(err, workflow.ErrEmptyRange):
		return JsonResponse(c, fiber.StatusNotFound, false, "No certificates found in the given range!", nil)
	case errors.Is(err, workflow.ErrNoStock):
		return JsonResponse(c, fiber.StatusConflict, false, "No certificates available at this branch!", nil)
	case errors.Is(err, workflow.ErrInsufficientStock):
		return JsonResponse(c, fiber.StatusConflict, false, "Insufficient medal stock for transfer!", nil)
	case errors.Is(err, workflow.ErrInsufficientMedalStock):
		return JsonResponse(c, fiber.StatusConflict, false, "Insufficient medal stock at this branch!", nil)
	case errors.Is(err, workflow.ErrMaxReservations):
		return JsonResponse(c, fiber.StatusConflict, false, "Maximum of 5 active reservations reached!", nil)
	case errors.Is(err, workflow.ErrNotReserved):
		return JsonResponse(c, fiber.StatusConflict, false, "Certificate is not reserved!", nil)
	case errors.Is(err, workflow.ErrReservationExpired):
		return JsonResponse(c, fiber.StatusConflict, false, "Reservation has expired!", nil)
	case errors.Is(err, workflow.ErrAccessDenied):
		return JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
	case errors.Is(err, workflow.ErrCannotMigrate):
		return JsonResponse(c, fiber.StatusConflict, false, "Certificates in this range cannot be migrated!", nil)
	case errors.Is(err, workflow.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Record not found!", nil)
	}

	if config.AppConfig != nil && config.AppConfig.Debug {
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", fiber.Map{
			"error": err.Error(),
		})
	}
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong. Please try again later!", nil)
}
