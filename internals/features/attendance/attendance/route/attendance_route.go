package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skyhr_backend/internals/features/attendance/attendance/controller"
	"skyhr_backend/internals/features/attendance/attendance/service"
	"skyhr_backend/internals/middlewares"
)

// AttendanceUserRoutes — alur kehadiran user login.
func AttendanceUserRoutes(user fiber.Router, db *gorm.DB, orch *service.Orchestrator) {
	ctrl := controller.NewAttendanceController(db, orch)

	att := user.Group("/attendance")
	att.Post("/qr/validate", ctrl.ValidateQr)
	// Rate limit lebih ketat: tiap request memotret + memanggil provider wajah.
	att.Post("/check-in", middlewares.CheckInRateLimiter(), ctrl.CheckIn)
	att.Post("/check-out", ctrl.CheckOut)
	att.Get("/report", ctrl.MyReport)
}

// AttendanceAdminRoutes — review & koreksi oleh owner/admin organization.
func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB, orch *service.Orchestrator) {
	ctrl := controller.NewAttendanceController(db, orch)

	att := admin.Group("/attendance")
	att.Get("/report", ctrl.Report)
	att.Get("/flagged", ctrl.Flagged)
	att.Post("/admin/mark-absences", ctrl.MarkAbsences)
	att.Put("/admin/update-status/:eventId", ctrl.UpdateStatus)
}
