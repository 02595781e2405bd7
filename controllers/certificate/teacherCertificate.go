package certificateController

import (
	"strconv"
	"time"

	"certstock/config"
	"certstock/database"
	"certstock/middleware"
	"certstock/models"
	"certstock/utils"
	certificateValidator "certstock/validators/certificate"
	"certstock/workflow"

	"github.com/gofiber/fiber/v2"
)

// ReserveCertificate claims the lowest available certificate at a branch for
// the calling teacher
func ReserveCertificate(c *fiber.Ctx) error {
	teacherID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedReserve").(*struct {
		BranchID uint `json:"branchId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	certificate, reservation, err := workflow.ReserveCertificate(tx, utils.Log, teacherID, reqData.BranchID)
	if err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionReserve), fiber.Map{
		"teacherId": teacherID,
		"number":    certificate.Number,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate reserved!", fiber.Map{
		"certificateId": certificate.ID,
		"number":        certificate.Number,
		"expiresAt":     reservation.ExpiresAt,
	})
}

// ReleaseCertificate hands a reserved certificate back to stock
func ReleaseCertificate(c *fiber.Ctx) error {
	teacherID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedRelease").(*struct {
		CertificateID uint `json:"certificateId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	if err := workflow.ReleaseReservation(tx, utils.Log, reqData.CertificateID, teacherID); err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionRelease), fiber.Map{
		"teacherId":     teacherID,
		"certificateId": reqData.CertificateID,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reservation released!", nil)
}

// GetMyReservations lists the calling teacher's active reservations
func GetMyReservations(c *fiber.Ctx) error {
	teacherID := c.Locals("userId").(uint)

	reservations, err := workflow.FindActiveReservationsByTeacher(database.Database.Db, teacherID)
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Active reservations fetched!", fiber.Map{
		"reservations": reservations,
		"limit":        workflow.MaxActiveReservations,
	})
}

// PrintCertificate prints a reserved certificate for a student
func PrintCertificate(c *fiber.Ctx) error {
	teacherID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedPrint").(*certificateValidator.PrintRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	ptcDate, _ := time.Parse("2006-01-02", reqData.PTCDate)

	tx := database.Database.Db.Begin()

	printRecord, err := workflow.PrintCertificate(tx, utils.Log, reqData.CertificateID, teacherID,
		reqData.StudentName, reqData.ModuleID, ptcDate)
	if err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionPrint), fiber.Map{
		"teacherId":     teacherID,
		"certificateId": reqData.CertificateID,
		"studentName":   reqData.StudentName,
	})

	// Fire a low stock alert once the print drops the branch to the threshold
	quantity, err := workflow.GetMedalStock(database.Database.Db, printRecord.BranchID)
	if err == nil && quantity <= config.AppConfig.LowStockThreshold {
		go utils.SendLowStockAlert(printRecord.BranchID, quantity)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate printed!", fiber.Map{
		"printId":   printRecord.ID,
		"printedAt": printRecord.PrintedAt,
	})
}

// ReprintCertificate appends a reprint for an already printed certificate
func ReprintCertificate(c *fiber.Ctx) error {
	teacherID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedReprint").(*certificateValidator.PrintRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	ptcDate, _ := time.Parse("2006-01-02", reqData.PTCDate)

	tx := database.Database.Db.Begin()

	printRecord, err := workflow.ReprintCertificate(tx, utils.Log, reqData.CertificateID, teacherID,
		reqData.StudentName, reqData.ModuleID, ptcDate)
	if err != nil {
		tx.Rollback()
		return middleware.WorkflowErrorResponse(c, err)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	utils.NotifyAudit(string(models.ActionReprint), fiber.Map{
		"teacherId":     teacherID,
		"certificateId": reqData.CertificateID,
		"studentName":   reqData.StudentName,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate reprinted!", fiber.Map{
		"printId":   printRecord.ID,
		"printedAt": printRecord.PrintedAt,
	})
}

// GetPrintHistory returns every print of one certificate, original first
func GetPrintHistory(c *fiber.Ctx) error {
	certificateID, err := strconv.Atoi(c.Params("id"))
	if err != nil || certificateID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
	}

	prints, err := workflow.PrintHistory(database.Database.Db, uint(certificateID))
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Print history fetched!", fiber.Map{
		"prints": prints,
	})
}
