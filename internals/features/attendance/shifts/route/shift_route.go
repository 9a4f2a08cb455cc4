package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	shiftCtrl "skyhr_backend/internals/features/attendance/shifts/controller"
)

func ShiftAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := shiftCtrl.NewShiftController(db)

	g := r.Group("/shifts")
	g.Post("/", ctrl.Create)
	g.Get("/", ctrl.List)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)

	s := r.Group("/attendance-settings")
	s.Get("/", ctrl.GetSettings)
	s.Put("/", ctrl.UpsertSettings)
}
